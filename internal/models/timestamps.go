package models

import "time"

// Timestamps records when an entity was inserted and last written.
// Both fields are owned by the store; application code only reads them.
type Timestamps struct {
	// DateCreated is set once, when the entity is first persisted.
	DateCreated time.Time

	// DateModified is set on insert and advanced on every update.
	// It is never earlier than DateCreated.
	DateModified time.Time
}

// StampCreated is the insert hook: both timestamps become now.
func (t *Timestamps) StampCreated(now time.Time) {
	t.DateCreated = now
	t.DateModified = now
}

// StampModified is the update hook: DateModified becomes now, clamped so it
// never falls behind DateCreated when the clock steps backwards.
func (t *Timestamps) StampModified(now time.Time) {
	if now.Before(t.DateCreated) {
		now = t.DateCreated
	}
	t.DateModified = now
}

// Timestamped is implemented by every persisted model.
type Timestamped interface {
	StampCreated(now time.Time)
	StampModified(now time.Time)
}
