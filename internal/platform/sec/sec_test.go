// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/platform/sec"
)

/*
TestParseRole covers assignable, legacy and unknown role values.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		value      string
		wantErr    bool
		assignable bool
		legacy     bool
	}{
		{"admin", false, true, false},
		{"producao", false, true, false},
		{"financeiro", false, true, false},
		{"executivo", false, false, true},
		{"ar", false, false, true},
		{"viewer", false, false, true},
		{"operador", false, false, true},
		{"superuser", true, false, false},
		{"", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			role, err := sec.ParseRole(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.assignable, role.IsAssignable())
			assert.Equal(t, tt.legacy, role.IsLegacy())
		})
	}
}

/*
TestTokenService_RoundTrip signs and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "test-issuer")

	// 1. Sign
	signed, err := tokens.GenerateAccessToken("u1", "a@b.com", "s1", time.Minute)
	require.NoError(t, err)

	// 2. Verify
	claims, err := tokens.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "s1", claims.ID)

	// 3. Expired tokens are rejected
	expired, err := tokens.GenerateAccessToken("u1", "a@b.com", "s1", -time.Minute)
	require.NoError(t, err)
	_, err = tokens.VerifyToken(expired)
	assert.Error(t, err)

	// 4. Foreign issuer is rejected
	other := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "someone-else")
	foreign, err := other.GenerateAccessToken("u1", "a@b.com", "s1", time.Minute)
	require.NoError(t, err)
	_, err = tokens.VerifyToken(foreign)
	assert.Error(t, err)
}

/*
TestHashToken is deterministic and distinct per input.
*/
func TestHashToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.Equal(t, sec.HashToken(token), sec.HashToken(token))
	assert.NotEqual(t, sec.HashToken(token), sec.HashToken(token+"x"))
}

/*
TestPasswordHash verifies bcrypt comparison both ways.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("segredo1")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("segredo1", hash))
	assert.False(t, sec.CheckPasswordHash("segredo2", hash))
}
