package httpx

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("notblank", validateNotBlank)

	// Report errors under the wire name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// validateNotBlank rejects empty and whitespace-only strings. The stock
// "required" tag lets " " through.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateStruct runs the validate tags on s and returns one message per
// offending field, keyed by the JSON-style field name. A nil map means the
// struct is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fieldName := fe.Field()

		var message string
		switch fe.Tag() {
		case "notblank":
			message = "must not be blank"
		case "max":
			message = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			message = "is invalid"
		}
		fields[fieldName] = message
	}
	return fields
}
