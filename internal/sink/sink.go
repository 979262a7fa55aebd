// Package sink serializes scan results to timestamped CSV and JSON artifacts.
// Writes are atomic (temp file + rename) so a failed run never leaves a
// truncated artifact behind.
package sink

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-cli/internal/model"
)

const timestampLayout = "20060102_150405"

// Options configures output paths. Explicit CSVPath/JSONPath override the
// timestamped defaults under Dir.
type Options struct {
	Dir      string
	BaseName string
	CSVPath  string
	JSONPath string
}

// Sink writes the collected records once, at end of run.
type Sink struct {
	opts Options
}

// New creates a Sink, applying defaults for unset options.
func New(opts Options) *Sink {
	if opts.Dir == "" {
		opts.Dir = "filtered_results"
	}
	if opts.BaseName == "" {
		opts.BaseName = "competitor_clinics"
	}
	return &Sink{opts: opts}
}

// WriteAll writes the CSV and JSON artifacts and returns their paths. The
// two files are independent views of an immutable result set, so they are
// written concurrently.
func (s *Sink) WriteAll(ctx context.Context, records []model.ClinicRecord) (csvPath, jsonPath string, err error) {
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return "", "", eris.Wrap(err, "sink: create results dir")
	}

	stamp := time.Now().Format(timestampLayout)
	csvPath = s.opts.CSVPath
	if csvPath == "" {
		csvPath = filepath.Join(s.opts.Dir, s.opts.BaseName+"_"+stamp+".csv")
	}
	jsonPath = s.opts.JSONPath
	if jsonPath == "" {
		jsonPath = filepath.Join(s.opts.Dir, s.opts.BaseName+"_"+stamp+".json")
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return WriteCSV(csvPath, records) })
	g.Go(func() error { return WriteJSON(jsonPath, records) })
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return csvPath, jsonPath, nil
}

// writeAtomic writes via a temp file in the destination directory and renames
// it into place.
func writeAtomic(path string, fn func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return eris.Wrap(err, "sink: create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fn(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "sink: close temp file")
	}
	return eris.Wrap(os.Rename(tmp.Name(), path), "sink: rename into place")
}
