package payload

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vasapolrittideah/fitness-tracker-api/shared/validation"
)

// NewValidator returns a validator that knows the custom payload tags.
func NewValidator() (*validation.Validator, error) {
	v, err := validation.New()
	if err != nil {
		return nil, err
	}

	if err := v.RegisterValidation("food_amount", validateFoodAmount, "must be a positive number or a portion description"); err != nil {
		return nil, err
	}

	return v, nil
}

func validateFoodAmount(fl validator.FieldLevel) bool {
	field := fl.Field()

	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() > 0
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	default:
		return false
	}
}
