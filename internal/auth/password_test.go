package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("longenough1")
	require.NoError(t, err)

	assert.NotEqual(t, "longenough1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected a bcrypt hash, got %q", hash)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("longenough1")
	require.NoError(t, err)
	second, err := HashPassword("longenough1")
	require.NoError(t, err)

	// The random salt makes every hash unique, but both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("longenough1", first))
	assert.True(t, CheckPassword("longenough1", second))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "matching password", password: "correct horse battery staple", want: true},
		{name: "wrong password", password: "wrong horse", want: false},
		{name: "empty password", password: "", want: false},
		{name: "hash is not its own preimage", password: hash, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password, hash))
		})
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
}
