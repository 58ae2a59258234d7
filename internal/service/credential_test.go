package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("sekret")
	require.NoError(t, err)
	assert.NotEqual(t, "sekret", hash)

	again, err := hasher.Hash("sekret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")

	assert.True(t, hasher.Verify("sekret", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("sekret", "not-a-hash"))
}

func TestBcryptHasherCostFallback(t *testing.T) {
	hasher := NewBcryptHasher(1)
	assert.Equal(t, DefaultBcryptCost, hasher.cost)

	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
