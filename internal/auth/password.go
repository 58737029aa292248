// Package auth implements password hashing and verification.
//
// Digests use PBKDF2-SHA256 with a random 8-byte salt and an explicit
// iteration count, serialized as
//
//	pbkdf2:sha256:<iterations>$<hex salt>$<hex key>
//
// so the parameters travel with the digest and can be raised without
// invalidating existing accounts.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	method     = "pbkdf2:sha256"
	iterations = 600_000
	saltLen    = 8
	keyLen     = 32
)

// HashPassword derives a salted digest from the plaintext password.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, iterations, keyLen, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", method, iterations,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// The comparison is constant time with respect to the derived key, and
// a malformed digest always verifies as false rather than erroring.
func VerifyPassword(digest, plaintext string) bool {
	iter, salt, key, ok := parseDigest(digest)
	if !ok {
		return false
	}

	derived := pbkdf2.Key([]byte(plaintext), salt, iter, len(key), sha256.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// parseDigest splits a digest into its parameters. ok is false for any
// digest that does not match the expected serialization.
func parseDigest(digest string) (iter int, salt, key []byte, ok bool) {
	parts := strings.SplitN(digest, "$", 3)
	if len(parts) != 3 {
		return 0, nil, nil, false
	}

	header := parts[0]
	if !strings.HasPrefix(header, method+":") {
		return 0, nil, nil, false
	}
	iter, err := strconv.Atoi(strings.TrimPrefix(header, method+":"))
	if err != nil || iter <= 0 {
		return 0, nil, nil, false
	}

	salt, err = hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return 0, nil, nil, false
	}
	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return 0, nil, nil, false
	}

	return iter, salt, key, true
}
