// Package credential derives and checks one-way password hashes.
package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordRequired is returned when hashing an empty password.
var ErrPasswordRequired = errors.New("password is required")

// Cost is the bcrypt work factor used for new hashes.
const Cost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of plaintext. Passwords of any
// length are accepted. Two calls with the same input return different
// strings; both verify.
func HashPassword(plaintext string) (string, error) {
	if err := ValidatePassword(plaintext); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword(prehash(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches hash.
// A malformed hash is a mismatch.
func VerifyPassword(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plaintext)) == nil
}

// ValidatePassword checks that plaintext can be hashed.
func ValidatePassword(plaintext string) error {
	if plaintext == "" {
		return ErrPasswordRequired
	}
	return nil
}

// prehash maps plaintext to 44 bytes so bcrypt sees all of it. bcrypt
// rejects input over 72 bytes.
func prehash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
