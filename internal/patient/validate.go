package patient

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports failures under the json key of each field so they can be
// mapped back to the field table.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "finite", func(fl validator.FieldLevel) bool {
		x := fl.Field().Float()
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	})
	mustRegister(v, "whole", func(fl validator.FieldLevel) bool {
		x := fl.Field().Float()
		return x == math.Trunc(x)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
