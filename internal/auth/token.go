package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenExpiration is how long a token stays valid when no
// expiration is given.
const DefaultTokenExpiration = 1800 * time.Second

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
	ErrMissingKey   = errors.New("token secret key is empty")
)

// Claims is the signed token payload: {"id": user_id} plus the registered
// expiry, issue time and token ID.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// GenerateAuthToken signs an HS256 token for userID that expires after
// expiration.
func GenerateAuthToken(userID int64, secretKey []byte, expiration time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", ErrMissingKey
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt(now, expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// expiresAt returns the expiry for a token issued at now. NumericDate keeps
// whole seconds only, so positive lifetimes round up and the token stays valid
// for at least expiration. Non-positive lifetimes round down to an instant that
// has already passed.
func expiresAt(now time.Time, expiration time.Duration) time.Time {
	if expiration <= 0 {
		return now.Truncate(time.Second)
	}
	exp := now.Add(expiration)
	if t := exp.Truncate(time.Second); !t.Equal(exp) {
		exp = t.Add(time.Second)
	}
	return exp
}

// VerifyAuthToken checks the signature and expiry of tokenString and returns
// the user ID it carries. Every failure, whether a forged signature, a wrong
// key, a malformed token or an expired one, returns false.
func VerifyAuthToken(tokenString string, secretKey []byte) (int64, bool) {
	claims, err := parseToken(tokenString, secretKey)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

func parseToken(tokenString string, secretKey []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	if len(secretKey) == 0 {
		return nil, ErrMissingKey
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TokenManager binds a secret key and default expiration so callers do not
// pass them around.
type TokenManager struct {
	secretKey  []byte
	expiration time.Duration
}

// NewTokenManager creates a token manager. A non-positive expiration falls
// back to DefaultTokenExpiration.
func NewTokenManager(secretKey []byte, expiration time.Duration) *TokenManager {
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}
	return &TokenManager{
		secretKey:  secretKey,
		expiration: expiration,
	}
}

// Expiration returns the default token lifetime.
func (m *TokenManager) Expiration() time.Duration {
	return m.expiration
}

// Generate creates a token for userID with the default expiration.
func (m *TokenManager) Generate(userID int64) (string, error) {
	return GenerateAuthToken(userID, m.secretKey, m.expiration)
}

// GenerateWithExpiration creates a token for userID that expires after d.
func (m *TokenManager) GenerateWithExpiration(userID int64, d time.Duration) (string, error) {
	return GenerateAuthToken(userID, m.secretKey, d)
}

// Verify returns the user ID carried by a valid token.
func (m *TokenManager) Verify(tokenString string) (int64, bool) {
	return VerifyAuthToken(tokenString, m.secretKey)
}
