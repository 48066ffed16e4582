package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateCode(t *testing.T) {
	code, hash, err := generateCode()
	require.NoError(t, err)

	require.Len(t, code, 2)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
	}

	// The stored hash verifies the relayed code and nothing else.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("xx")))
}
