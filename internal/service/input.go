package service

import (
	"fmt"
	"unicode/utf8"

	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/model"
)

// lengthRule bounds the rune length of an already trimmed value. max 0 means unbounded.
type lengthRule struct {
	field    string
	value    string
	min, max int
}

func checkLengths(rules ...lengthRule) error {
	var fields []apperrors.FieldError
	for _, r := range rules {
		n := utf8.RuneCountInString(r.value)
		switch {
		case n == 0:
			fields = append(fields, apperrors.FieldError{Field: r.field, Message: "is required"})
		case n < r.min:
			fields = append(fields, apperrors.FieldError{Field: r.field, Message: fmt.Sprintf("must be at least %d characters", r.min)})
		case r.max > 0 && n > r.max:
			fields = append(fields, apperrors.FieldError{Field: r.field, Message: fmt.Sprintf("must be at most %d characters", r.max)})
		}
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields...)
	}
	return nil
}

func checkListingFields(f model.ListingFields) error {
	return checkLengths(
		lengthRule{field: "name", value: f.Name, min: 2},
		lengthRule{field: "manufacturer", value: f.Manufacturer, min: 3},
		lengthRule{field: "genre", value: f.Genre, min: 2},
		lengthRule{field: "image_url", value: f.ImageURL, min: 1},
		lengthRule{field: "iframe_url", value: f.IframeURL, min: 1},
		lengthRule{field: "description", value: f.Description, min: 5, max: 500},
	)
}

func checkNames(firstName, lastName string) error {
	return checkLengths(
		lengthRule{field: "first_name", value: firstName, min: 3},
		lengthRule{field: "last_name", value: lastName, min: 3},
	)
}
