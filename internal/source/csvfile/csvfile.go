// Package csvfile reads the transaction ledger from a local CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"svodka/internal/ledger"
	"svodka/internal/source"
)

type Reader struct {
	path string
}

var _ source.Loader = (*Reader)(nil)

func New(path string) *Reader {
	return &Reader{path: path}
}

// Load reads and parses the whole file. A missing file is ErrNotFound;
// anything unparseable inside it is ErrMalformed.
func (r *Reader) Load(_ context.Context) (ledger.RecordSet, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, r.path)
		}
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = ';' // bank exports are semicolon-separated
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrMalformed, r.path, err)
	}
	return source.ParseTable(rows)
}
