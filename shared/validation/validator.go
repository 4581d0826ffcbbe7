// Package validation wraps go-playground/validator with English messages and
// JSON field names, so errors can be returned to API clients as they are.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// FieldErrors maps a JSON field path to a human readable message.
type FieldErrors map[string]string

// Error implements error.
func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, msg := range fe {
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// Validator validates request payloads.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator that reports JSON field names in English.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s. Field failures are returned as FieldErrors; any other
// error (for example a non-struct argument) is returned unchanged.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = fe.Translate(v.trans)
	}

	return fields
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// RegisterValidation adds a custom tag. Failures read "<field> <message>".
func (v *Validator) RegisterValidation(tag string, fn validator.Func, message string) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return err
	}

	return v.validate.RegisterTranslation(tag, v.trans,
		func(trans ut.Translator) error {
			return trans.Add(tag, "{0} "+message, true)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			msg, err := trans.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}
