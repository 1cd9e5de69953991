// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/bucketlist/internal/models"
)

var (
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflicts with an existing record")

	// ErrInvalidReference is returned when a write points at a missing parent.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// BucketlistFilter narrows ListBucketlists. Zero fields match everything.
type BucketlistFilter struct {
	// Name matches the bucket list name exactly.
	Name string

	// CreatedBy restricts results to one owner.
	CreatedBy *int64

	// Ownerless restricts results to lists without an owner.
	// Ignored when CreatedBy is set.
	Ownerless bool
}

// ItemFilter narrows ListItems and FindItem. Zero fields match everything.
type ItemFilter struct {
	Name         string
	BucketlistID int64
	Done         *bool
}

// Store defines the persistence boundary for users, bucket lists and items.
// This abstraction allows swapping storage backends without changing the
// service layer.
//
// Lookups of a missing ID return nil and no error. Updates and deletes of a
// missing ID return false and no error. Every mutation is a single
// transaction; a failed mutation leaves prior state unchanged.
type Store interface {
	// CreateUser persists a new user. user.ID and timestamps are populated.
	// Returns ErrConflict if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser writes username and password hash and advances DateModified.
	UpdateUser(ctx context.Context, user *models.User) (bool, error)

	// DeleteUser removes the user with all owned bucket lists and their items.
	DeleteUser(ctx context.Context, id int64) (bool, error)

	// CreateBucketlist persists a new bucket list.
	// Returns ErrConflict if the owner already has a list with that name.
	CreateBucketlist(ctx context.Context, bucketlist *models.Bucketlist) error

	GetBucketlist(ctx context.Context, id int64) (*models.Bucketlist, error)
	ListBucketlists(ctx context.Context, filter BucketlistFilter) ([]*models.Bucketlist, error)
	UpdateBucketlist(ctx context.Context, bucketlist *models.Bucketlist) (bool, error)

	// DeleteBucketlist removes the bucket list and all of its items.
	DeleteBucketlist(ctx context.Context, id int64) (bool, error)

	// CreateItem persists a new item.
	// Returns ErrInvalidReference if the bucket list does not exist.
	CreateItem(ctx context.Context, item *models.Item) error

	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]*models.Item, error)

	// FindItem returns the first item matching filter, or nil.
	FindItem(ctx context.Context, filter ItemFilter) (*models.Item, error)

	UpdateItem(ctx context.Context, item *models.Item) (bool, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
