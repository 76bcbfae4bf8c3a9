package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("ChangeMe123!")
	require.NoError(t, err)
	assert.NotEqual(t, "ChangeMe123!", hash)

	assert.True(t, CheckPassword(hash, "ChangeMe123!"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("ChangeMe123!")
	require.NoError(t, err)
	second, err := HashPassword("ChangeMe123!")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}
