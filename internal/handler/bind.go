package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "gamecatalog/internal/errors"
)

// normalizer is implemented by requests whose text fields are trimmed before
// validation, so padding cannot satisfy a length constraint.
type normalizer interface {
	normalize()
}

// bind decodes the request into req, normalizes it and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{
			Field:   "body",
			Message: "malformed request body",
		})
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
