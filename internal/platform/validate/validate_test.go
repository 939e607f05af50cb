// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/validate"
)

/*
TestValidator_Rules runs each rule once on a passing and once on a failing value.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *validate.Validator)
		fails bool
	}{
		{"required_ok", func(v *validate.Validator) { v.Required("nome", "Gravadora") }, false},
		{"required_blank", func(v *validate.Validator) { v.Required("nome", "   ") }, true},
		{"max_len_accents", func(v *validate.Validator) { v.MaxLen("nome", "Gravação", 8) }, false},
		{"max_len_over", func(v *validate.Validator) { v.MaxLen("nome", "Gravações", 8) }, true},
		{"email_ok", func(v *validate.Validator) { v.Email("email", "ana@gravadora.com") }, false},
		{"email_no_domain", func(v *validate.Validator) { v.Email("email", "ana@") }, true},
		{"amount_zero", func(v *validate.Validator) { v.NonNegative("valor", 0) }, false},
		{"amount_negative", func(v *validate.Validator) { v.NonNegative("valor", -0.01) }, true},
		{"uuid_ok", func(v *validate.Validator) { v.UUID("artista_id", "0190f1c2-7b1e-7c3a-9d2b-1a2b3c4d5e6f") }, false},
		{"uuid_short", func(v *validate.Validator) { v.UUID("artista_id", "0190f1c2") }, true},
		{"one_of_ok", func(v *validate.Validator) { v.OneOf("status", "pago", "pendente", "pago") }, false},
		{"one_of_case", func(v *validate.Validator) { v.OneOf("status", "PAGO", "pendente", "pago") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.apply(v)
			assert.Equal(t, tt.fails, v.Err() != nil)
		})
	}
}

/*
TestValidator_Accumulates reports every failing field in one error.
*/
func TestValidator_Accumulates(t *testing.T) {
	// 1. Three failures across two fields
	err := (&validate.Validator{}).
		Required("nome", "").
		MaxLen("nome", "", 10).
		Email("email", "not-an-email").
		NonNegative("valor", -1).
		Err()

	// 2. One VALIDATION_ERROR carrying all of them
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, []string{"nome", "email", "valor"},
		[]string{ae.Details[0].Field, ae.Details[1].Field, ae.Details[2].Field})
}
