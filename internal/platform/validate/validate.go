// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects form errors field by field and reports them as one
// VALIDATION_ERROR, so the back office can highlight every bad field at once.
//
// Services validate; handlers and repositories do not.
package validate

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

// ErrInvalidJSON is returned for request bodies that do not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures. The zero value is ready to use; use one per
// operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails on values that are empty after trimming.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen counts characters, not bytes: "Gravação" is 8 long.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.Custom(field, err != nil, "Must be a valid email address")
}

// NonNegative is the rule for amounts in reais.
func (v *Validator) NonNegative(field string, value float64) *Validator {
	return v.Custom(field, value < 0, "Must be zero or greater")
}

func (v *Validator) UUID(field, value string) *Validator {
	return v.Custom(field, !uuid.IsValid(value), "Must be a valid UUID")
}

// OneOf fails unless value is exactly one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message against field when failed is true.
//
//	v.Custom("data_fim", end.Before(start), "Must not be before data_inicio")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Err ends the chain: nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// RequiredError builds a single-field failure outside a chain.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
