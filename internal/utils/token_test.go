// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var tokenKeyRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestGenerateTokenKey_Format(t *testing.T) {
	key, err := GenerateTokenKey()

	require.NoError(t, err)
	assert.Regexp(t, tokenKeyRe, key)
}

func TestGenerateTokenKey_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		key, err := GenerateTokenKey()
		require.NoError(t, err)

		_, dup := seen[key]
		require.False(t, dup, "duplicate token key %s", key)
		seen[key] = struct{}{}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cure-Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cure-Passw0rd", hash)
	assert.True(t, CheckPassword(hash, "s3cure-Passw0rd"))
	assert.False(t, CheckPassword(hash, "s3cure-Passw0rd!"))
}

func TestHashPassword_SaltsEveryHash(t *testing.T) {
	first, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_InvalidCost(t *testing.T) {
	_, err := HashPassword("password", bcrypt.MaxCost+1)

	assert.Error(t, err)
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	assert.False(t, CheckPassword("", ""))
	assert.False(t, CheckPassword("", "password"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "password"))
}
