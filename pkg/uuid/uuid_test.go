// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/pkg/uuid"
)

/*
TestNew generates distinct, valid identifiers.
*/
func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.IsValid(first))
	assert.NotEqual(t, first, second)
}

/*
TestIsValid accepts only the canonical 36-character form.
*/
func TestIsValid(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"6BA7B810-9DAD-11D1-80B4-00C04FD430C8", true},
		{"urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"6ba7b8109dad11d180b400c04fd430c8", false},
		{"not-a-uuid", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, uuid.IsValid(tt.value), tt.value)
	}
}
