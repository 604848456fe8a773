package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenNumericCode(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenNumericCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code must be numeric: %q", code)
		}
	}

	// Non-positive lengths fall back to six digits.
	code, err := GenNumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestGenOpaqueToken(t *testing.T) {
	a, err := GenOpaqueToken(32)
	require.NoError(t, err)
	b, err := GenOpaqueToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestSecretEqual(t *testing.T) {
	hash := HashSecret("123456")

	assert.True(t, SecretEqual(hash, "123456"))
	assert.True(t, SecretEqual(hash, " 123456 "), "surrounding whitespace is tolerated")
	assert.False(t, SecretEqual(hash, "654321"))
	assert.False(t, SecretEqual(hash, ""))
}
