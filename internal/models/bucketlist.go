package models

import (
	"fmt"
	"strings"
)

// Bucketlist is a named collection of goal items.
type Bucketlist struct {
	// ID is assigned by the store on insert.
	ID int64

	// Name is required. (Name, CreatedBy) is unique.
	Name string

	// CreatedBy is the owning user's ID, or nil for an ownerless list.
	CreatedBy *int64

	Timestamps
}

// NewBucketlist creates a bucket list, optionally owned by createdBy.
func NewBucketlist(name string, createdBy *int64) (*Bucketlist, error) {
	b := &Bucketlist{Name: NormalizeName(name), CreatedBy: createdBy}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NormalizeName trims surrounding whitespace from a bucket list or item name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// Validate checks required fields. The store calls it before every write.
func (b *Bucketlist) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// OwnedBy reports whether userID owns the bucket list.
func (b *Bucketlist) OwnedBy(userID int64) bool {
	return b.CreatedBy != nil && *b.CreatedBy == userID
}

func (b *Bucketlist) String() string {
	return fmt.Sprintf("<Bucketlist '%s'>", b.Name)
}
