package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError describes one failed validation rule on one struct field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// uuid.UUID zero values slip past "required", so foreign keys and
	// identifiers use this rule instead.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})

	// The only currencies prices and transactions may carry.
	v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "IQD", "USD":
			return true
		}
		return false
	})

	return v
}

// ValidateStruct runs the registered rules against data and returns one
// FieldError per violation, nil when everything passes.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrors []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, FieldError{
			Field: fe.StructNamespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return fieldErrors
}
