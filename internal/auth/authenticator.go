package auth

import (
	"context"

	"github.com/mmynk/bucketlist/internal/models"
)

// Authenticator is what the RPC layer needs from an account backend:
// sign-up, sign-in and the tokens that stand in for a session.
type Authenticator interface {
	// Register stores a new account. The username is lowercased.
	Register(ctx context.Context, username, credential string) (*models.User, error)

	// Authenticate returns the user for a username and credential pair,
	// or ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential rejects credentials too weak to register with.
	ValidateCredential(credential string) error

	// IssueToken signs a token carrying the user's ID.
	IssueToken(user *models.User) (string, error)

	// ResolveToken returns the user a token was issued to. Bad tokens and
	// users that no longer exist yield nil and no error.
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
