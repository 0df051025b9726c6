// Package source loads the transaction ledger from its external home and
// hands it to the rest of the program as a typed RecordSet. The readers
// here are thin: all derivation happens in ledger and report.
package source

import (
	"context"
	"errors"

	"svodka/internal/ledger"
)

// Backend names accepted by the factory.
const (
	BackendCSV    = "csv"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

var (
	// ErrNotFound means the configured ledger source does not exist.
	ErrNotFound = errors.New("operations source not found")
	// ErrMalformed means the source exists but a required field could not
	// be parsed.
	ErrMalformed = errors.New("operations source malformed")
)

// Loader is the port every ledger backend implements.
type Loader interface {
	// Load reads the full ledger in source order.
	Load(ctx context.Context) (ledger.RecordSet, error)
}
