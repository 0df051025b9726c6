// Package memory holds a fixed ledger in memory, for tests and offline runs.
package memory

import (
	"context"

	"svodka/internal/ledger"
)

type Store struct {
	records ledger.RecordSet
}

func New(records ledger.RecordSet) *Store {
	return &Store{records: records}
}

// Load returns a copy of the stored records in insertion order.
func (s *Store) Load(_ context.Context) (ledger.RecordSet, error) {
	out := make(ledger.RecordSet, len(s.records))
	copy(out, s.records)
	return out, nil
}
