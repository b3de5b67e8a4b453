// Package repository defines the activity directory store interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Activity is the record shape exposed by the store.
type Activity = model.Activity

// Store provides read/write access to the activity directory.
type Store interface {
	// List returns a deep copy of the full directory keyed by activity name.
	List(ctx context.Context) map[string]Activity

	// Signup adds email to the activity's roster.
	// Returns ErrNotFound for an unknown activity and ErrAlreadySignedUp
	// when email is already on the roster.
	Signup(ctx context.Context, activity, email string) error

	// Unregister removes email from the activity's roster.
	// Returns ErrNotFound for an unknown activity and ErrNotSignedUp
	// when email is not on the roster.
	Unregister(ctx context.Context, activity, email string) error

	// Count returns the number of activities in the directory.
	Count(ctx context.Context) int

	// ParticipantCount returns the total registrations across all rosters.
	ParticipantCount(ctx context.Context) int

	// Reset discards all mutations and reseeds the directory.
	Reset(ctx context.Context)
}
