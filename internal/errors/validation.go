package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// Single wraps one field error as a ValidationErrors collection.
func Single(field, message string, value any) ValidationErrors {
	return ValidationErrors{*NewValidationError(field, message, value)}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	var validatorErr validator.ValidationErrors
	if errors.As(err, &validatorErr) {
		for _, fe := range validatorErr {
			out = append(out, ValidationError{
				Field:   fe.Field(),
				Message: getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return out
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", err.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "numeric":
		return "must be a number"
	case "alpha":
		return "must contain only letters"
	case "alphanum":
		return "must contain only letters and numbers"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", err.Param())
	case "gtefield":
		return fmt.Sprintf("must not be before %s", err.Param())
	case "dive":
		return "contains an invalid element"

	// Custom validators
	case "user_role":
		return "must be a valid user role (participant, reviewer, admin)"
	case "user_status":
		return "must be a valid user status (pending, active, suspended, inactive)"
	case "paper_status":
		return "must be a valid paper status"
	case "recommendation":
		return "must be one of: Publikovať, Publikovať_so_zmenami, Odmietnuť"
	case "conference_status":
		return "must be a valid conference status (upcoming, ongoing, completed, canceled)"
	case "question_type":
		return "must be a valid question type (rating, yes_no, text)"
	case "conference_year":
		return "must be between 2010 and five years from now"
	case "file_ext":
		return "must be a pdf, doc or docx file"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
