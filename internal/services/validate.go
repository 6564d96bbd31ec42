package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// fieldMessages overrides the generic message for a field/tag pair.
var fieldMessages = map[string]string{
	"code.min":          "Code must be at least 10 characters.",
	"code.required":     "Code must be at least 10 characters.",
	"problem.min":       "Problem description must be at least 10 characters.",
	"problem.required":  "Problem description must be at least 10 characters.",
	"language.required": "Please select a language.",
	"githubLink.url":    "Must be a valid URL.",
	"difficulty.oneof":  "Difficulty must be easy, medium or hard.",
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "url":
		return "Must be a valid URL."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	}
	return "Invalid value."
}

// Validate runs struct validation and reports failures per json field name.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := out.Fields[fe.Field()]; !seen {
			out.Fields[fe.Field()] = messageFor(fe)
		}
	}
	return out
}
