package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospect-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scan_runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	url_count   INTEGER NOT NULL DEFAULT 0,
	match_count INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS scan_records (
	id               TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL REFERENCES scan_runs(id),
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

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, source string, urlCount int) (*model.ScanRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_runs (id, source, status, url_count, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, string(model.RunStatusRunning), urlCount, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.ScanRun{
		ID:        id,
		Source:    source,
		Status:    model.RunStatusRunning,
		URLCount:  urlCount,
		StartedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, status model.RunStatus, matchCount int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE scan_runs SET status = ?, match_count = ?, finished_at = ? WHERE id = ?`,
		string(status), matchCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.ScanRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, status, url_count, match_count, started_at, finished_at FROM scan_runs WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: get run: not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ScanRun, error) {
	query := `SELECT id, source, status, url_count, match_count, started_at, finished_at FROM scan_runs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY started_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.ScanRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run row")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) AddRecords(ctx context.Context, runID string, records []model.ClinicRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scan_records
			 (id, run_id, clinic_name, provider_name, credentials, website_url, city_state, contact_info, website_provider)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), runID,
			rec.ClinicName, rec.ProviderName, rec.Credentials,
			rec.WebsiteURL, rec.CityState, rec.ContactInfo, rec.WebsiteProvider,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert record")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit records")
}

func (s *SQLiteStore) ListRecords(ctx context.Context, runID string) ([]model.ClinicRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT clinic_name, provider_name, credentials, website_url, city_state, contact_info, website_provider
		 FROM scan_records WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list records %s", runID)
	}
	defer rows.Close()

	var records []model.ClinicRecord
	for rows.Next() {
		var rec model.ClinicRecord
		if err := rows.Scan(
			&rec.ClinicName, &rec.ProviderName, &rec.Credentials,
			&rec.WebsiteURL, &rec.CityState, &rec.ContactInfo, &rec.WebsiteProvider,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record row")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.ScanRun, error) {
	var (
		run      model.ScanRun
		status   string
		finished sql.NullTime
	)
	if err := row.Scan(&run.ID, &run.Source, &status, &run.URLCount, &run.MatchCount, &run.StartedAt, &finished); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
