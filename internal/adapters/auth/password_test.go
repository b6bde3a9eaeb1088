package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash_and_Compare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	password := "secret1"

	hash, err := h.Hash(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	ok, err := h.Compare(hash, password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_Hash_is_salted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two digests of the same password must differ")
}

func TestBcryptHasher_Compare_wrong_password(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("correct")
	require.NoError(t, err)

	ok, err := h.Compare(hash, "wrong")
	require.NoError(t, err, "a mismatch is a normal result, not an error")
	assert.False(t, ok)
}

func TestBcryptHasher_Compare_corrupt_hash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Compare("not-a-bcrypt-hash", "password")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}

func TestBcryptHasher_Hash_too_long(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("x", 100))
	require.Error(t, err, "bcrypt rejects inputs over 72 bytes")
}
