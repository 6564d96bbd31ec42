package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingFields reports gin binding failures keyed by the lower-camel field name.
func bindingFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		out[name] = bindingMessage(fe)
	}
	return out
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "url":
		return "Must be a valid URL."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	case "dive":
		return "Invalid entry."
	}
	return "Invalid value."
}
