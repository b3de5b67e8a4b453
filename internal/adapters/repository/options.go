// Package repository defines the activity directory store interface and errors.
package repository

// Option applies a configuration option to the RosterStore.
type Option func(*RosterStore)

// WithSeed replaces the default catalog used by Reset. The function is
// re-invoked on every Reset so seed data stays pristine.
func WithSeed(catalog func() map[string]Activity) Option {
	return func(s *RosterStore) {
		if catalog != nil {
			s.seed = catalog
		}
	}
}
