package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it,
// which keeps the Postgres store unit-testable without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS scan_runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	url_count   INTEGER NOT NULL DEFAULT 0,
	match_count INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS scan_records (
	id               TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL REFERENCES scan_runs(id),
	seq              INTEGER NOT NULL DEFAULT 0,
	clinic_name      TEXT NOT NULL DEFAULT '',
	provider_name    TEXT NOT NULL DEFAULT '',
	credentials      TEXT NOT NULL DEFAULT '',
	website_url      TEXT NOT NULL,
	city_state       TEXT NOT NULL DEFAULT '',
	contact_info     TEXT NOT NULL DEFAULT '',
	website_provider TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_runs_status ON scan_runs(status);
CREATE INDEX IF NOT EXISTS idx_scan_records_run_id ON scan_records(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, source string, urlCount int) (*model.ScanRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO scan_runs (id, source, status, url_count, started_at) VALUES ($1, $2, $3, $4, $5)`,
		id, source, string(model.RunStatusRunning), urlCount, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.ScanRun{
		ID:        id,
		Source:    source,
		Status:    model.RunStatusRunning,
		URLCount:  urlCount,
		StartedAt: now,
	}, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, runID string, status model.RunStatus, matchCount int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE scan_runs SET status = $1, match_count = $2, finished_at = $3 WHERE id = $4`,
		string(status), matchCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", runID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.ScanRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, status, url_count, match_count, started_at, finished_at FROM scan_runs WHERE id = $1`,
		runID,
	)
	run, err := scanPgRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: get run: not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ScanRun, error) {
	query := `SELECT id, source, status, url_count, match_count, started_at, finished_at FROM scan_runs`
	var args []any
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY started_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.ScanRun
	for rows.Next() {
		run, err := scanPgRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run row")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) AddRecords(ctx context.Context, runID string, records []model.ClinicRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, rec := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO scan_records
			 (id, run_id, seq, clinic_name, provider_name, credentials, website_url, city_state, contact_info, website_provider)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New().String(), runID, i,
			rec.ClinicName, rec.ProviderName, rec.Credentials,
			rec.WebsiteURL, rec.CityState, rec.ContactInfo, rec.WebsiteProvider,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert record")
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit records")
}

func (s *PostgresStore) ListRecords(ctx context.Context, runID string) ([]model.ClinicRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT clinic_name, provider_name, credentials, website_url, city_state, contact_info, website_provider
		 FROM scan_records WHERE run_id = $1 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list records %s", runID)
	}
	defer rows.Close()

	var records []model.ClinicRecord
	for rows.Next() {
		var rec model.ClinicRecord
		if err := rows.Scan(
			&rec.ClinicName, &rec.ProviderName, &rec.Credentials,
			&rec.WebsiteURL, &rec.CityState, &rec.ContactInfo, &rec.WebsiteProvider,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record row")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate records")
}

func scanPgRun(row pgx.Row) (*model.ScanRun, error) {
	var (
		run      model.ScanRun
		status   string
		finished *time.Time
	)
	if err := row.Scan(&run.ID, &run.Source, &status, &run.URLCount, &run.MatchCount, &run.StartedAt, &finished); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status)
	run.FinishedAt = finished
	return &run, nil
}
