package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/batch"
	"github.com/sells-group/prospect-cli/internal/detect"
	"github.com/sells-group/prospect-cli/internal/fetch"
	"github.com/sells-group/prospect-cli/internal/loader"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/sink"
	"github.com/sells-group/prospect-cli/internal/store"
)

var (
	scanInput    string
	scanLimit    int
	scanCSVOut   string
	scanJSONOut  string
	scanNoLedger bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a URL list for competitor-powered sites",
	Long: `Reads candidate URLs from a CSV, JSON, or XLSX file, fetches each site
sequentially, and emits a record for every site where a configured competitor
signature is found.

Examples:
  # Scan a CSV of URLs (first column)
  prospect-cli scan --input prospects.csv

  # Scan a JSON export, first 10 URLs only, explicit output paths
  prospect-cli scan --input prospects.json --limit 10 --csv-out out.csv --json-out out.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		urls := loader.Load(scanInput)
		urls = limitURLs(urls, scanLimit)
		if len(urls) == 0 {
			zap.L().Warn("scan: no urls to process", zap.String("input", scanInput))
		}

		var ledger store.Store
		if !scanNoLedger {
			st, err := store.Open(ctx, cfg.Store.Driver, storeDSN())
			if err != nil {
				// The ledger is bookkeeping; a scan must not die for it.
				zap.L().Warn("scan: ledger unavailable", zap.Error(err))
			} else {
				ledger = st
				defer func() { _ = ledger.Close() }()
			}
		}

		var run *model.ScanRun
		if ledger != nil {
			r, err := ledger.CreateRun(ctx, scanInput, len(urls))
			if err != nil {
				zap.L().Warn("scan: create run failed", zap.Error(err))
			} else {
				run = r
			}
		}

		fetcher := fetch.NewHTTPFetcher(fetch.Options{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		})
		set := detect.NewCompetitorSet(cfg.Competitors)
		processor := batch.New(fetcher, set, batch.Options{
			PaceEvery: cfg.Batch.PaceEvery,
			PaceDelay: time.Duration(cfg.Batch.PaceDelaySecs) * time.Second,
		})

		records, sum, err := processor.Process(ctx, urls)
		if err != nil {
			finishRun(ledger, run, model.RunStatusFailed, sum.Matched)
			return eris.Wrap(err, "scan: process")
		}

		out := sink.New(sink.Options{
			Dir:      cfg.Output.Dir,
			BaseName: cfg.Output.BaseName,
			CSVPath:  scanCSVOut,
			JSONPath: scanJSONOut,
		})
		csvPath, jsonPath, err := out.WriteAll(ctx, records)
		if err != nil {
			zap.L().Error("scan: write results failed", zap.Error(err))
		} else {
			zap.L().Info("scan: results written",
				zap.String("csv", csvPath),
				zap.String("json", jsonPath),
			)
		}

		if ledger != nil && run != nil {
			if err := ledger.AddRecords(ctx, run.ID, records); err != nil {
				zap.L().Warn("scan: ledger records failed", zap.Error(err))
			}
		}
		finishRun(ledger, run, model.RunStatusComplete, sum.Matched)

		fmt.Printf("Processed %d sites: %d matched, %d failed\n", sum.Processed, sum.Matched, sum.Failed)
		return nil
	},
}

// limitURLs truncates urls to n entries; n <= 0 means no limit.
func limitURLs(urls []string, n int) []string {
	if n > 0 && n < len(urls) {
		return urls[:n]
	}
	return urls
}

func storeDSN() string {
	if cfg.Store.Driver == "postgres" {
		return cfg.Store.DatabaseURL
	}
	return cfg.Store.Path
}

func finishRun(ledger store.Store, run *model.ScanRun, status model.RunStatus, matched int) {
	if ledger == nil || run == nil {
		return
	}
	if err := ledger.CompleteRun(context.Background(), run.ID, status, matched); err != nil {
		zap.L().Warn("scan: complete run failed", zap.Error(err))
	}
}

func init() {
	scanCmd.Flags().StringVar(&scanInput, "input", "", "path to CSV, JSON, or XLSX file of candidate URLs (required)")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "process at most N URLs (0 = all)")
	scanCmd.Flags().StringVar(&scanCSVOut, "csv-out", "", "explicit CSV output path (default: timestamped under output dir)")
	scanCmd.Flags().StringVar(&scanJSONOut, "json-out", "", "explicit JSON output path (default: timestamped under output dir)")
	scanCmd.Flags().BoolVar(&scanNoLedger, "no-ledger", false, "skip recording the run in the store")
	_ = scanCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scanCmd)
}
