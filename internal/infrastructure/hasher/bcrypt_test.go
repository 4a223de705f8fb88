package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_RoundTrip(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "12345678", hash)
	assert.GreaterOrEqual(t, len(hash), 50)

	ok, err := h.Verify("12345678", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	other, err := h.Hash("87654321")
	require.NoError(t, err)
	ok, err = h.Verify("12345678", other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_Salted(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	a, err := h.Hash("secret-password")
	require.NoError(t, err)
	b, err := h.Hash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcrypt_MalformedHash(t *testing.T) {
	ok, err := NewBcrypt(bcrypt.MinCost).Verify("x", "not-a-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNewBcrypt_CostOutOfRange(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
}
