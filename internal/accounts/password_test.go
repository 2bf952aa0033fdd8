package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, ":")

	ok, err := verifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	a, err := hashPassword("same input")
	require.NoError(t, err)
	b, err := hashPassword("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordMalformedRecord(t *testing.T) {
	_, err := verifyPassword("anything", "no-separator-here")
	require.Error(t, err)

	_, err = verifyPassword("anything", "!!!not-base64:"+strings.Repeat("x", 10))
	require.Error(t, err)
}
