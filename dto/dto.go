// Package dto holds request bodies accepted by the HTTP API together with
// the schemas they are validated against before decoding.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/upb/taskhub/utils"
)

// Decode validates body against schema and then unmarshals it into out.
// Every failure is a *utils.ValidationError.
func Decode(body []byte, schema utils.Schema, out interface{}) error {
	if err := schema.ValidateJSON(body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return utils.NewFieldValidationError([]utils.FieldError{{
			Field:   field,
			Code:    utils.CodeType,
			Message: "has an unexpected value",
		}})
	}
	return nil
}

// Optional distinguishes an absent field from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Some returns a set Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a set Optional holding null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
