package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "gamecatalog/internal/errors"
)

// storeErr maps a missing row to ErrNotFound and wraps anything else as an
// infrastructure failure of op.
func storeErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
