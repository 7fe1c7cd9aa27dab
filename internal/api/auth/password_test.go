package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptPasswordHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptPasswordHasher()

	t.Run("RoundTrip", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", hash)
		assert.True(t, hasher.Check("password123", hash))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		hash, err := hasher.Hash("correct-password")
		require.NoError(t, err)
		assert.False(t, hasher.Check("wrong-password", hash))
	})

	t.Run("FreshSaltPerCall", func(t *testing.T) {
		first, err := hasher.Hash("same-input")
		require.NoError(t, err)
		second, err := hasher.Hash("same-input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Check("same-input", first))
		assert.True(t, hasher.Check("same-input", second))
	})

	t.Run("MalformedHashIsFalseNotError", func(t *testing.T) {
		assert.False(t, hasher.Check("anything", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Check("anything", ""))
	})

	t.Run("EmptyPasswordAgainstOtherHash", func(t *testing.T) {
		hash, err := hasher.Hash("non-empty")
		require.NoError(t, err)
		assert.False(t, hasher.Check("", hash))
	})
}
