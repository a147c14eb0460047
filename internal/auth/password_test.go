package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndCompare(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "s3cret", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
	assert.Error(t, ComparePassword(hash, ""))
}

func TestPasswordHashesDiffer(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, h1, h2)
}
