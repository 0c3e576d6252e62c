package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// enumerated is implemented by the closed string sets of the data model.
type enumerated interface {
	Valid() bool
}

// newValidator returns a validator that reports JSON field names and
// understands the `enum` tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumerated)
		return !ok || e.Valid()
	})
	return v
}
