// Package validation extends gin's request binding with domain tags and turns
// binding failures into readable messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/moodify/core/internal/models"
)

func init() {
	if err := Register(); err != nil {
		panic(err)
	}
}

// Register installs the json tag name func and the "mood" tag on gin's validator.
// It is safe to call more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: unexpected binding engine")
	}
	v.RegisterTagNameFunc(jsonName)
	return v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return models.IsKnownMood(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Message describes the first field error in err. A JSON value of the wrong type
// names its field; any other error returns fallback.
func Message(err error, fallback string) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has an invalid type"
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fallback
	}
	return fieldMessage(errs[0])
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "mood":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.AllMoods, ", "))
	default:
		return field + " is invalid"
	}
}
