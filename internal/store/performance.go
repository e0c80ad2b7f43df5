package store

import "github.com/quizprog/quizprog/internal/spacedrep"

// PerformanceRepo persists the spaced repetition ledger as one JSON blob.
// It implements spacedrep.Saver.
type PerformanceRepo struct {
	store *Store
}

// NewPerformanceRepo returns a repo over the given store.
func NewPerformanceRepo(s *Store) *PerformanceRepo {
	return &PerformanceRepo{store: s}
}

// Load returns the persisted ledger records, or an empty map when none exist
// or the blob cannot be read.
func (r *PerformanceRepo) Load() map[string]*spacedrep.Record {
	records := make(map[string]*spacedrep.Record)
	if _, err := r.store.GetJSON(KeyPerformance, &records); err != nil {
		return make(map[string]*spacedrep.Record)
	}
	return records
}

// SavePerformance writes the full ledger.
func (r *PerformanceRepo) SavePerformance(records map[string]*spacedrep.Record) error {
	return r.store.PutJSON(KeyPerformance, records)
}
