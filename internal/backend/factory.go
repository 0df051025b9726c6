// Package backend selects and constructs the configured ledger source.
package backend

import (
	"context"
	"fmt"

	"svodka/internal/config"
	"svodka/internal/log"
	"svodka/internal/source"
	"svodka/internal/source/csvfile"
	"svodka/internal/source/gsheet"
	"svodka/internal/source/memory"
)

// New builds the ledger backend selected by the configuration.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (source.Loader, error) {
	logger = logger.WithComponent(log.ComponentSource)

	switch cfg.DataBackend {
	case source.BackendCSV:
		logger.Info("Initialized CSV backend", log.FieldPath, cfg.OperationsPath)
		return csvfile.New(cfg.OperationsPath), nil
	case source.BackendSheets:
		cli, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return cli, nil
	case source.BackendMemory:
		logger.Info("Initialized memory backend")
		return memory.New(nil), nil
	default:
		return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}
