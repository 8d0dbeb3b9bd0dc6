package core

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by stores when no (non-deleted) document matches.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when creating a user whose username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserStore persists user accounts.
// Implementations: MongoDB, in-memory (tests).
type UserStore interface {
	// Create inserts a new user and returns its assigned id.
	Create(ctx context.Context, u User) (string, error)

	// GetByID returns the user with the given id, excluding soft-deleted ones.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername returns the user with the given username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns users sorted and filtered per opts.
	List(ctx context.Context, opts ListOptions) ([]User, error)

	// Update replaces the profile fields of the user with the given id.
	Update(ctx context.Context, id string, upd UserUpdate) error

	// Delete soft-deletes the user with the given id.
	Delete(ctx context.Context, id string) error
}

// CredentialStore persists vault entries, always scoped to the owning user.
type CredentialStore interface {
	Create(ctx context.Context, c Credential) (string, error)
	GetByID(ctx context.Context, userID, credentialID string) (*Credential, error)
	ListByUser(ctx context.Context, userID, search string) ([]Credential, error)
	Update(ctx context.Context, userID, credentialID string, upd CredentialUpdate) error
	Delete(ctx context.Context, userID, credentialID string) error
}

// CounterStore is the shared quota counter backing the rate limiter.
//
// Incr must be a single atomic increment-with-expiry: it increments the
// counter under key, attaches ttl only when the key is first created, and
// returns the post-increment count together with the remaining lifetime.
// Two concurrent calls for the same key must never observe the same count.
type CounterStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (count int64, remaining time.Duration, err error)
}
