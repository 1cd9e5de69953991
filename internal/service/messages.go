package service

import (
	"time"

	"github.com/mmynk/bucketlist/internal/models"
)

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// Bucketlist is a bucket list as returned to its owner.
type Bucketlist struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CreatedBy    *int64    `json:"created_by"`
	Items        []*Item   `json:"items,omitempty"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// Item is one goal inside a bucket list.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Done         bool      `json:"done"`
	BucketlistID int64     `json:"bucketlist_id"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// RegisterRequest is the input to AuthService.Register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse carries the new user and a token for it.
type RegisterResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// LoginRequest is the input to AuthService.Login. Username is case-insensitive.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the user and a fresh token.
type LoginResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// MeRequest is empty; the caller comes from the bearer token.
type MeRequest struct{}

// MeResponse carries the authenticated user.
type MeResponse struct {
	User *User `json:"user"`
}

// CreateBucketlistRequest names a new list owned by the caller.
type CreateBucketlistRequest struct {
	Name string `json:"name"`
}

// CreateBucketlistResponse carries the stored list.
type CreateBucketlistResponse struct {
	Bucketlist *Bucketlist `json:"bucketlist"`
}

// GetBucketlistRequest identifies one of the caller's lists.
type GetBucketlistRequest struct {
	ID int64 `json:"id"`
}

// GetBucketlistResponse carries the list with its items.
type GetBucketlistResponse struct {
	Bucketlist *Bucketlist `json:"bucketlist"`
}

// ListBucketlistsRequest filters the caller's lists.
type ListBucketlistsRequest struct {
	// Name restricts the result to lists with exactly this name.
	Name string `json:"name,omitempty"`
}

// ListBucketlistsResponse carries the matching lists.
type ListBucketlistsResponse struct {
	Bucketlists []*Bucketlist `json:"bucketlists"`
}

// UpdateBucketlistRequest renames a list.
type UpdateBucketlistRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UpdateBucketlistResponse carries the renamed list.
type UpdateBucketlistResponse struct {
	Bucketlist *Bucketlist `json:"bucketlist"`
}

// DeleteBucketlistRequest identifies the list to remove with its items.
type DeleteBucketlistRequest struct {
	ID int64 `json:"id"`
}

// DeleteBucketlistResponse is empty.
type DeleteBucketlistResponse struct{}

// CreateItemRequest adds an item to one of the caller's lists.
type CreateItemRequest struct {
	BucketlistID int64  `json:"bucketlist_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
}

// CreateItemResponse carries the stored item.
type CreateItemResponse struct {
	Item *Item `json:"item"`
}

// GetItemRequest identifies an item within a list.
type GetItemRequest struct {
	BucketlistID int64 `json:"bucketlist_id"`
	ID           int64 `json:"id"`
}

// GetItemResponse carries the item.
type GetItemResponse struct {
	Item *Item `json:"item"`
}

// ListItemsRequest selects the items of a list, optionally by done state.
type ListItemsRequest struct {
	BucketlistID int64 `json:"bucketlist_id"`
	Done         *bool `json:"done,omitempty"`
}

// ListItemsResponse carries the matching items.
type ListItemsResponse struct {
	Items []*Item `json:"items"`
}

// UpdateItemRequest changes only the fields that are set.
type UpdateItemRequest struct {
	BucketlistID int64   `json:"bucketlist_id"`
	ID           int64   `json:"id"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Done         *bool   `json:"done,omitempty"`
}

// UpdateItemResponse carries the updated item.
type UpdateItemResponse struct {
	Item *Item `json:"item"`
}

// DeleteItemRequest identifies the item to remove.
type DeleteItemRequest struct {
	BucketlistID int64 `json:"bucketlist_id"`
	ID           int64 `json:"id"`
}

// DeleteItemResponse is empty.
type DeleteItemResponse struct{}

func toUser(u *models.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		DateCreated:  u.DateCreated,
		DateModified: u.DateModified,
	}
}

func toBucketlist(b *models.Bucketlist, items []*models.Item) *Bucketlist {
	out := &Bucketlist{
		ID:           b.ID,
		Name:         b.Name,
		CreatedBy:    b.CreatedBy,
		DateCreated:  b.DateCreated,
		DateModified: b.DateModified,
	}
	for _, item := range items {
		out.Items = append(out.Items, toItem(item))
	}
	return out
}

func toItem(i *models.Item) *Item {
	return &Item{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		Done:         i.Done,
		BucketlistID: i.BucketlistID,
		DateCreated:  i.DateCreated,
		DateModified: i.DateModified,
	}
}
