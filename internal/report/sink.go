package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"svodka/internal/log"
)

// Sink consumes assembled reports. Keeping it behind an interface keeps
// the filesystem out of the report computation entirely.
type Sink interface {
	Persist(name string, v any) error
}

// FileSink appends serialized reports to files in the outputs directory.
type FileSink struct {
	dir    string
	logger *log.Logger
}

var _ Sink = (*FileSink)(nil)

func NewFileSink(dir string, logger *log.Logger) *FileSink {
	return &FileSink{
		dir:    dir,
		logger: logger.WithComponent(log.ComponentSink),
	}
}

// Persist appends the report to the named file, creating the outputs
// directory on first use.
func (s *FileSink) Persist(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create outputs dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("serialize report %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "Result: %s\n", data); err != nil {
		return fmt.Errorf("write report file %s: %w", path, err)
	}
	s.logger.Info("Report persisted", log.FieldPath, path)
	return nil
}
