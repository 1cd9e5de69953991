package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketlist/internal/auth"
	"github.com/mmynk/bucketlist/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
)

// TokenResolver turns a bearer token into the user it was issued to.
// A nil user with a nil error means the token is not acceptable.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// GetUserID extracts the user ID from the context.
// Returns 0 and false if the request is unauthenticated.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if info, ok := ctx.Value(callInfoKey).(*callInfo); ok {
		info.userID = user.ID
	}
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, UsernameKey, user.Username)
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth returns an interceptor that validates bearer tokens and
// requires authentication. It adds the user ID and username to the request
// context. Expired, forged and orphaned tokens are all reported the same way.
func RequireAuth(resolver TokenResolver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			user, err := resolver.ResolveToken(ctx, token)
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			if user == nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			return next(WithUser(ctx, user), req)
		}
	}
}
