package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
)

// FieldError is a single credential-store or input validation failure,
// returned to the caller verbatim instead of being raised.
type FieldError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", ve[0].Description)
}

func Validation(code, description string) ValidationErrors {
	return ValidationErrors{{Code: code, Description: description}}
}
