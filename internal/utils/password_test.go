package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.Error(t, CheckPasswordHash("wrong password", hash))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("password1")
	require.NoError(t, err)
	h2, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
