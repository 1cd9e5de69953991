package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketlist/internal/auth"
	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage"
)

var (
	errBucketlistNotFound = errors.New("bucketlist not found")
	errItemNotFound       = errors.New("item not found")
	errUserNotFound       = errors.New("user not found")
)

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrConflict),
		errors.Is(err, auth.ErrUsernameExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrInvalidReference):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, errBucketlistNotFound),
		errors.Is(err, errItemNotFound),
		errors.Is(err, errUserNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
