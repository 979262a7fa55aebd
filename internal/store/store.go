// Package store persists the scan-run ledger: one row per batch scan plus the
// records it emitted, queryable after the fact.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for scan runs and their records.
type Store interface {
	CreateRun(ctx context.Context, source string, urlCount int) (*model.ScanRun, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, matchCount int) error
	GetRun(ctx context.Context, runID string) (*model.ScanRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.ScanRun, error)

	AddRecords(ctx context.Context, runID string, records []model.ClinicRecord) error
	ListRecords(ctx context.Context, runID string) ([]model.ClinicRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open returns a migrated Store for the given driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch driver {
	case "", "sqlite":
		st, err = NewSQLite(dsn)
	case "postgres":
		st, err = NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
