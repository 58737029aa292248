package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "pbkdf2:sha256:"))
	parts := strings.Split(digest, "$")
	require.Len(t, parts, 3)
	// 8-byte salt hex-encoded
	assert.Len(t, parts[1], 16)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("S3cret-passphrase!")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(digest, "S3cret-passphrase!"))
	assert.False(t, VerifyPassword(digest, "S3cret-passphrase"))
	assert.False(t, VerifyPassword(digest, ""))
}

func TestVerifyPassword_MalformedDigestFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"plain text", "not a digest"},
		{"missing sections", "pbkdf2:sha256:600000$abcd"},
		{"wrong method", "bcrypt:600000$abcd$ef01"},
		{"non-numeric iterations", "pbkdf2:sha256:many$abcd$ef01"},
		{"zero iterations", "pbkdf2:sha256:0$abcd$ef01"},
		{"bad salt hex", "pbkdf2:sha256:600000$zzzz$ef01"},
		{"bad key hex", "pbkdf2:sha256:600000$abcd$zz"},
		{"empty salt", "pbkdf2:sha256:600000$$ef01"},
		{"empty key", "pbkdf2:sha256:600000$abcd$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword(tt.digest, "anything"))
		})
	}
}

func TestVerifyPassword_ForeignIterationCount(t *testing.T) {
	// Digests carry their own iteration count, so older (cheaper)
	// digests still verify.
	const digest = "pbkdf2:sha256:1000$73616c7473616c74$c0f2b2b4e0a2c2e6"
	// Not a real derivation; just ensure parsing succeeds and the
	// comparison is a clean false.
	assert.False(t, VerifyPassword(digest, "password"))
}
