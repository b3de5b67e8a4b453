package repository

import (
	"context"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/metrics"
)

// Default number of audit records retained.
const defaultJournalCapacity = 1000

// Journal is a capped, in-memory log of recent roster mutations fed by
// the audit workers. When full, the oldest record is dropped.
type Journal struct {
	mu       sync.RWMutex
	records  []model.Registration
	capacity int
}

// JournalOption applies a configuration option to the Journal.
type JournalOption func(*Journal)

// WithJournalCapacity bounds the number of retained records.
func WithJournalCapacity(capacity int) JournalOption {
	return func(j *Journal) {
		if capacity > 0 {
			j.capacity = capacity
		}
	}
}

// NewJournal creates an empty journal.
func NewJournal(opts ...JournalOption) *Journal {
	j := &Journal{
		capacity: defaultJournalCapacity,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.records = make([]model.Registration, 0, j.capacity)
	return j
}

// Append records a roster mutation, evicting the oldest record at capacity.
func (j *Journal) Append(ctx context.Context, reg model.Registration) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.records) >= j.capacity {
		j.records = j.records[1:]
	}
	j.records = append(j.records, reg)
	metrics.UpdateJournalSize(len(j.records))
	return nil
}

// Recent returns up to n of the most recent records, newest first.
func (j *Journal) Recent(ctx context.Context, n int) []model.Registration {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n <= 0 || n > len(j.records) {
		n = len(j.records)
	}
	out := make([]model.Registration, n)
	for i := 0; i < n; i++ {
		out[i] = j.records[len(j.records)-1-i]
	}
	return out
}

// Len returns the number of retained records.
func (j *Journal) Len(ctx context.Context) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.records)
}
