package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"svodka/internal/backend"
	"svodka/internal/config"
	"svodka/internal/ledger"
	"svodka/internal/log"
	"svodka/internal/marketdata"
	"svodka/internal/report"
)

const categoryReportFile = "category_report.txt"

func main() {
	dateFlag := flag.String("date", "", "reference timestamp (YYYY-MM-DD HH:MM:SS), defaults to now")
	categoryFlag := flag.String("category", "", "build and persist a category spending report")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(log.ParseLevel(cfg.LogLevel), log.ComponentApp)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		fail()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ref := time.Now()
	if *dateFlag != "" {
		parsed, err := ledger.ParseReference(*dateFlag, time.Now())
		if err != nil {
			logger.Error("Invalid reference timestamp",
				log.FieldTimestamp, *dateFlag, log.FieldError, err)
			fail()
		}
		ref = parsed
	}

	loader, err := backend.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Backend initialization failed",
			log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		fail()
	}

	records, err := loader.Load(ctx)
	if err != nil {
		logger.Error("Loading operations failed",
			log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		fail()
	}
	logger.Info("Operations loaded",
		log.FieldBackend, cfg.DataBackend, log.FieldRecords, len(records))

	settings, err := config.LoadUserSettings(cfg.UserSettingsPath)
	if err != nil {
		// An absent watchlist only empties the market sections.
		logger.Warn("User settings unavailable, market sections will be empty",
			log.FieldPath, cfg.UserSettingsPath, log.FieldError, err)
	}

	rates := marketdata.NewRateClient(cfg.RatesBaseURL, cfg.RatesAPIKey, cfg.BaseCurrency, cfg.HTTPTimeout, logger)
	intraday := marketdata.NewIntradayClient(cfg.MarketBaseURL, cfg.MarketAPIKey, cfg.HTTPTimeout, logger)
	resolver := marketdata.NewResolver(intraday, logger, marketdata.ResolverOptions{Timeout: cfg.HTTPTimeout})

	assembler := report.NewAssembler(rates, resolver, settings, logger)

	dashboard := assembler.BuildDashboard(ctx, records, ref)
	if err := printJSON(dashboard); err != nil {
		logger.Error("Writing dashboard failed", log.FieldError, err)
		fail()
	}

	phones := assembler.BuildPhoneExtract(records)
	if err := printJSON(phones); err != nil {
		logger.Error("Writing phone extract failed", log.FieldError, err)
		fail()
	}

	if *categoryFlag != "" {
		views := assembler.BuildCategoryReport(records, *categoryFlag, ref)
		sink := report.NewFileSink(cfg.OutputsDir, logger)
		if err := sink.Persist(categoryReportFile, views); err != nil {
			logger.Error("Persisting category report failed",
				log.FieldCategory, *categoryFlag, log.FieldError, err)
			fail()
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// fail keeps the user-facing failure line generic; the diagnostics are
// already in the log.
func fail() {
	fmt.Fprintln(os.Stderr, "svodka: run failed")
	os.Exit(1)
}
