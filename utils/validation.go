package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// FieldError describes a single rejected field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError wraps validation errors with structured details
type ValidationError struct {
	Message string
	Fields  map[string]string
	Errors  []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s %s", e.Message, e.Errors[0].Field, e.Errors[0].Message)
}

// Details returns the payload written under "details" in a 400 response
func (e *ValidationError) Details() map[string]interface{} {
	return map[string]interface{}{"errors": e.Errors}
}

// ValidateStruct validates a struct using go-playground/validator tags
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fieldErrs := make([]FieldError, 0, len(errs))
	for _, err := range errs {
		field := err.Field()
		var msg string
		switch err.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email"
		case "uuid":
			msg = "must be a valid UUID"
		case "min":
			msg = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			msg = fmt.Sprintf("must be at most %s", err.Param())
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())
		default:
			msg = fmt.Sprintf("failed on '%s' tag", err.Tag())
		}
		fieldErrs = append(fieldErrs, FieldError{Field: field, Code: err.Tag(), Message: msg})
	}
	return NewFieldValidationError(fieldErrs)
}

// NewFieldValidationError builds a ValidationError from a list of field errors
func NewFieldValidationError(errs []FieldError) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		if _, seen := fields[fe.Field]; !seen {
			fields[fe.Field] = fe.Message
		}
	}
	return &ValidationError{
		Message: "Validation failed",
		Fields:  fields,
		Errors:  errs,
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// GetValidationFields extracts field errors from a ValidationError
func GetValidationFields(err error) map[string]string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}

// ParseUUID parses a path or query identifier, returning a ValidationError naming the field
func ParseUUID(s string, fieldName string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, NewFieldValidationError([]FieldError{{
			Field:   fieldName,
			Code:    CodeFormat,
			Message: "must be a valid UUID",
		}})
	}
	return id, nil
}
