package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/bucketlist/internal/credential"
)

// User represents a registered account.
//
// The plaintext password is hashed by NewUser or SetPassword and then
// discarded. User has no way to read it back.
type User struct {
	// ID is assigned by the store on insert.
	ID int64

	// Username is unique and always lowercase.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	Timestamps
}

// NewUser creates a user with a lowercased username and a hashed password.
func NewUser(username, password string) (*User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user := &User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeUsername trims and lowercases a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// SetPassword replaces the stored hash with a hash of plaintext.
func (u *User) SetPassword(plaintext string) error {
	hash, err := credential.HashPassword(plaintext)
	if errors.Is(err, credential.ErrPasswordRequired) {
		return ErrPasswordRequired
	}
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// VerifyPassword reports whether plaintext matches the user's password.
func (u *User) VerifyPassword(plaintext string) bool {
	return credential.VerifyPassword(plaintext, u.PasswordHash)
}

func (u *User) String() string {
	return fmt.Sprintf("<User '%s'>", u.Username)
}
