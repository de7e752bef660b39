// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

// Package validation wraps go-playground/validator v10 with a singleton
// instance and readable error messages.
//
//	type DatasetConfig struct {
//	    Dir string `koanf:"dir" validate:"required"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return verr
//	}
//
// Field names in messages use the koanf tag, so errors point at the
// configuration key a user actually writes (dataset.dir, not Dir).
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

// ValidationError is a single field validation failure.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the namespaced field that failed (e.g. "dataset.dir").
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the tag parameter (e.g. "json console" for oneof).
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable message.
func (e *ValidationError) Error() string {
	return e.message
}

// StructValidationError collects every failed field of one struct.
type StructValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *StructValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins all field messages.
func (ve *StructValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(koanfTagName)
	})
	return validate
}

// koanfTagName reports struct fields by their koanf key.
func koanfTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// ValidateStruct validates s with the singleton validator.
// Returns nil when s is valid.
func ValidateStruct(s interface{}) *StructValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &StructValidationError{
			errors: []ValidationError{{
				field:   "unknown",
				tag:     "unknown",
				message: err.Error(),
			}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		field := fieldPath(fieldErr.Namespace())
		fieldErrors[i] = ValidationError{
			field:   field,
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr, field),
		}
	}

	return &StructValidationError{errors: fieldErrors}
}

// fieldPath drops the root struct name from a validator namespace:
// "Config.dataset.dir" becomes "dataset.dir".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// errorMessages covers the tags used by the config structs.
var errorMessages = map[string]string{
	"required": "%s is required",
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be greater than or equal to %s",
}

// translateError converts a validator.FieldError to a readable message.
func translateError(fe validator.FieldError, field string) string {
	template, ok := errorMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
	if fe.Param() == "" {
		return fmt.Sprintf(template, field)
	}
	return fmt.Sprintf(template, field, fe.Param())
}
