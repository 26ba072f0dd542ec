// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken builds a three-part token with the given JSON claims payload.
func makeToken(claims string) string {
	mid := base64.RawURLEncoding.EncodeToString([]byte(claims))
	return "header." + mid + ".signature"
}

// =============================================================================
// IDENTITY DECODE TESTS
// =============================================================================

func TestDecodeIdentity(t *testing.T) {
	token := makeToken(`{"sub":"ada@example.com","username":"ada","first_name":"Ada","exp":1234}`)

	id := DecodeIdentity(token)
	require.NotNil(t, id)
	assert.Equal(t, "ada@example.com", id.Subject)
	assert.Equal(t, "ada", id.Username)
	assert.Equal(t, "Ada", id.FirstName)
	assert.Equal(t, "Ada", id.DisplayName())
}

func TestDecodeIdentity_SubOnly(t *testing.T) {
	id := DecodeIdentity(makeToken(`{"sub":"x@y.z"}`))
	require.NotNil(t, id)
	assert.Equal(t, "x@y.z", id.DisplayName())
}

func TestDecodeIdentity_PaddedSegment(t *testing.T) {
	mid := base64.URLEncoding.EncodeToString([]byte(`{"sub":"p@q.r"}`))
	id := DecodeIdentity("h." + mid + ".s")
	require.NotNil(t, id)
	assert.Equal(t, "p@q.r", id.Subject)
}

func TestDecodeIdentity_Failures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two parts", "a.b"},
		{"four parts", "a.b.c.d"},
		{"bad base64", "a.!!!!.c"},
		{"not json", "a." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".c"},
		{"json without sub", makeToken(`{"username":"ada"}`)},
		{"json array payload", makeToken(`[1,2,3]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, DecodeIdentity(tt.token))
		})
	}
}

// =============================================================================
// CREDENTIAL STORE TESTS
// =============================================================================

func TestCredentialStore_TokenLifecycle(t *testing.T) {
	store, err := NewCredentialStoreWithDir(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Token()
	assert.False(t, ok, "fresh store should have no token")

	require.NoError(t, store.SetToken("abc.def.ghi"))
	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, store.ClearToken())
	_, ok = store.Token()
	assert.False(t, ok)

	// Clearing again is a no-op.
	assert.NoError(t, store.ClearToken())
}

func TestCredentialStore_RememberedLogin(t *testing.T) {
	store, err := NewCredentialStoreWithDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetRememberedLogin("ada@example.com"))
	login, ok := store.RememberedLogin()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", login)

	require.NoError(t, store.ClearRememberedLogin())
	_, ok = store.RememberedLogin()
	assert.False(t, ok)
}
