// Package models defines the core domain models for the bucketlist backend.
//
// # Models
//
//   - User: an account holding a username and a one-way password hash
//   - Bucketlist: a named collection of goals, optionally owned by a User
//   - Item: a single goal inside a Bucketlist, with a done flag
//
// # Ownership
//
// Relationships are expressed as integer IDs rather than pointers:
// Bucketlist.CreatedBy references User.ID and Item.BucketlistID references
// Bucketlist.ID. Deleting a parent removes its children; the store enforces
// this with cascading foreign keys.
//
// # Construction
//
// Entities are created with NewUser, NewBucketlist and NewItem. The
// constructors validate required fields so a bad entity never reaches the
// store. IDs and timestamps stay zero until the store persists the entity.
//
// # Passwords
//
// User keeps only PasswordHash. There is no field or method that returns the
// plaintext password; SetPassword and VerifyPassword are the only way to
// interact with it.
package models
