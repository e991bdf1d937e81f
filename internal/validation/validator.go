// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the field name (json tag when present) that failed validation.
func (e *FieldError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string {
	return e.tag
}

// Param returns the tag parameter (e.g. "100" for "lte=100").
func (e *FieldError) Param() string {
	return e.param
}

// Value returns the offending value.
func (e *FieldError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *FieldError) Error() string {
	return e.message
}

// Error is a collection of field validation failures.
type Error struct {
	fields []FieldError
}

// Fields returns the individual field failures.
func (ve *Error) Fields() []FieldError {
	return ve.fields
}

// Error joins the field messages.
func (ve *Error) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.fields))
	for i := range ve.fields {
		messages = append(messages, ve.fields[i].message)
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// label: a trimmed, non-empty effect, flavor or lineage entry.
		//nolint:errcheck // registration only fails for an empty tag or nil func
		_ = validate.RegisterValidation("label", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s != "" && strings.TrimSpace(s) == s
		})
	})

	return validate
}

// ValidateStruct validates s. It returns nil on success and *Error otherwise.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &Error{fields: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &Error{fields: fields}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"label":    "%s must be a non-empty label without surrounding whitespace",
	"url":      "%s must be a valid URL",
	"hostname": "%s must be a valid hostname",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
