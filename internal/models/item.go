package models

import (
	"fmt"
	"strings"
)

// Item is a single goal inside a bucket list.
type Item struct {
	// ID is assigned by the store on insert.
	ID int64

	// Name is required.
	Name string

	// Description is free text; empty by default.
	Description string

	// Done marks the goal as accomplished. False by default.
	Done bool

	// BucketlistID is the owning bucket list. Required.
	BucketlistID int64

	Timestamps
}

// NewItem creates a not-done item in the given bucket list.
func NewItem(name string, bucketlistID int64, description string) (*Item, error) {
	item := &Item{
		Name:         NormalizeName(name),
		Description:  description,
		BucketlistID: bucketlistID,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks required fields. The store calls it before every write.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrNameRequired
	}
	if i.BucketlistID <= 0 {
		return ErrBucketlistRequired
	}
	return nil
}

func (i *Item) String() string {
	return fmt.Sprintf("<Item '%s'>", i.Name)
}
