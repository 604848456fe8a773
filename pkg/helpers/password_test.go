package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secretpass1")
	require.NoError(t, err)
	assert.NotEqual(t, "secretpass1", hash)

	assert.True(t, CompareHashAndPassword(hash, "secretpass1"))
	assert.False(t, CompareHashAndPassword(hash, "wrongpass"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "secretpass1"))
}
