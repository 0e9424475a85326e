package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// FieldError is a single form-field validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects field failures in form order. It matches
// common.ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Add(field, message string) ValidationErrors {
	return append(v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) Addf(field, format string, args ...any) ValidationErrors {
	return v.Add(field, fmt.Sprintf(format, args...))
}

// Err returns nil when v is empty.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Field returns the first message for field, or "".
func (v ValidationErrors) Field(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return common.ErrValidation
}
