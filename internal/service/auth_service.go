package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketlist/internal/auth"
	"github.com/mmynk/bucketlist/internal/middleware"
	"github.com/mmynk/bucketlist/internal/storage"
)

// AuthService handles account registration, login and the current user.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.TokenManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.TokenManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new user account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	user, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.authenticator.IssueToken(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&RegisterResponse{
		User:      toUser(user),
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiration().Seconds()),
	}), nil
}

// Login authenticates a user and returns a token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.authenticator.IssueToken(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&LoginResponse{
		User:      toUser(user),
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiration().Seconds()),
	}), nil
}

// Me returns the authenticated user.
func (s *AuthService) Me(ctx context.Context, req *connect.Request[MeRequest]) (*connect.Response[MeResponse], error) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if user == nil {
		return nil, toConnectError(errUserNotFound)
	}

	return connect.NewResponse(&MeResponse{User: toUser(user)}), nil
}
