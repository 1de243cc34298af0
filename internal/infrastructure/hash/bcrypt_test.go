package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	hashed, err := h.Hash("secret2")
	require.NoError(t, err)
	assert.NotEqual(t, "secret2", hashed)
	assert.True(t, h.Verify("secret2", hashed))
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("secret2")
	require.NoError(t, err)
	second, err := h.Hash("secret2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret2", first))
	assert.True(t, h.Verify("secret2", second))
}

func TestVerifyWrongPassword(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	hashed, err := h.Hash("secret2")
	require.NoError(t, err)
	assert.False(t, h.Verify("wrong", hashed))
}

func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	assert.False(t, h.Verify("secret2", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret2", ""))
}

func TestNewBcryptOutOfRangeCost(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(99)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewBcrypt(-1)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
