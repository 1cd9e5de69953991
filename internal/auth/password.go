package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUsernameExists     = errors.New("username already registered")
)

// UserStorage defines the user persistence operations the authenticator needs.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	tokens  *TokenManager
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage, tokens *TokenManager) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		tokens:  tokens,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential string) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	user, err := models.NewUser(username, credential)
	if err != nil {
		return nil, err
	}

	existing, err := a.storage.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	if err := a.storage.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.VerifyPassword(credential) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken returns a token for user with the manager's default expiration.
func (a *PasswordAuthenticator) IssueToken(user *models.User) (string, error) {
	return a.tokens.Generate(user.ID)
}

// ResolveToken returns the user a token was issued to. An invalid or
// expired token, or one whose user no longer exists, yields nil and no error.
func (a *PasswordAuthenticator) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	userID, ok := a.tokens.Verify(tokenString)
	if !ok {
		return nil, nil
	}

	user, err := a.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}
	return user, nil
}
