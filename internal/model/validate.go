package model

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator, registering the custom
// itemtype rule and reporting fields by their JSON names.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("itemtype", func(fl validator.FieldLevel) bool {
			return ItemType(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// fieldMessages holds the user-facing message per field and failed tag.
var fieldMessages = map[string]map[string]string{
	"name":             {"required": "Item name is required"},
	"type":             {"required": "Item type is required", "itemtype": "Item type is invalid"},
	"description":      {"required": "Item description is required"},
	"coverImage":       {"required": "Cover image is required"},
	"additionalImages": {"required": "Additional images must not be empty"},
}

func validateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		// Slice elements are reported as "additionalImages[2]".
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := ve.Fields[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		ve.Fields[field] = msg
	}
	return ve
}
