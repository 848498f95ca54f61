package domain

import (
	"encoding/json"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that understands the event struct tags,
// including the "payload" rule for opaque signal blobs.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("payload", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.Slice {
			return false
		}
		raw, ok := field.Interface().(json.RawMessage)
		if !ok {
			return false
		}
		return !IsEmptySignal(raw)
	}, true)

	return v
}
