package repository

import (
	"context"
	"sync"

	"github.com/mergington/activities/internal/domain/seed"
	"github.com/mergington/activities/pkg/metrics"
)

// RosterStore is the in-memory Store implementation.
//
// One RWMutex guards the whole directory: every operation touches exactly
// one roster, so the lock is held only for a map lookup plus a set
// insert/remove and mutations can never interleave into a lost update.
type RosterStore struct {
	mu      sync.RWMutex
	rosters map[string]*roster
	seed    func() map[string]Activity
}

// roster keeps participants in insertion order for listing plus a
// membership set for constant-time duplicate checks.
type roster struct {
	description     string
	schedule        string
	maxParticipants int
	participants    []string
	members         map[string]struct{}
}

// NewRosterStore creates a directory store populated from the default
// catalog, or from the catalog supplied via options.
func NewRosterStore(ctx context.Context, opts ...Option) *RosterStore {
	s := &RosterStore{
		seed: seed.Catalog,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.Reset(ctx)
	return s
}

// List returns a deep copy of the full directory keyed by activity name.
func (s *RosterStore) List(ctx context.Context) map[string]Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Activity, len(s.rosters))
	for name, r := range s.rosters {
		out[name] = r.snapshot()
	}
	return out
}

// Signup adds email to the activity's roster.
func (s *RosterStore) Signup(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rosters[activity]
	if !ok {
		return ErrNotFound
	}
	if _, dup := r.members[email]; dup {
		return ErrAlreadySignedUp
	}

	r.participants = append(r.participants, email)
	r.members[email] = struct{}{}
	s.publishGauges()
	return nil
}

// Unregister removes email from the activity's roster.
func (s *RosterStore) Unregister(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rosters[activity]
	if !ok {
		return ErrNotFound
	}
	if _, present := r.members[email]; !present {
		return ErrNotSignedUp
	}

	delete(r.members, email)
	for i, p := range r.participants {
		if p == email {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			break
		}
	}
	s.publishGauges()
	return nil
}

// Count returns the number of activities in the directory.
func (s *RosterStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rosters)
}

// ParticipantCount returns the total registrations across all rosters.
func (s *RosterStore) ParticipantCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participantCountLocked()
}

// Reset discards all mutations and reseeds the directory.
func (s *RosterStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.seed()
	s.rosters = make(map[string]*roster, len(catalog))
	for name, a := range catalog {
		r := &roster{
			description:     a.Description,
			schedule:        a.Schedule,
			maxParticipants: a.MaxParticipants,
			participants:    make([]string, 0, len(a.Participants)),
			members:         make(map[string]struct{}, len(a.Participants)),
		}
		for _, email := range a.Participants {
			// Enforce at-most-once membership even against a sloppy seed.
			if _, dup := r.members[email]; dup {
				continue
			}
			r.participants = append(r.participants, email)
			r.members[email] = struct{}{}
		}
		s.rosters[name] = r
	}
	s.publishGauges()
}

// snapshot builds an Activity copy safe to hand out.
func (r *roster) snapshot() Activity {
	participants := make([]string, len(r.participants))
	copy(participants, r.participants)
	return Activity{
		Description:     r.description,
		Schedule:        r.schedule,
		MaxParticipants: r.maxParticipants,
		Participants:    participants,
	}
}

// participantCountLocked must be called with s.mu held.
func (s *RosterStore) participantCountLocked() int {
	total := 0
	for _, r := range s.rosters {
		total += len(r.participants)
	}
	return total
}

// publishGauges must be called with s.mu held.
func (s *RosterStore) publishGauges() {
	metrics.UpdateActivitiesTotal(len(s.rosters))
	metrics.UpdateParticipantsTotal(s.participantCountLocked())
}
