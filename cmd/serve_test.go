package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
)

func newServeTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServe_Health(t *testing.T) {
	mux := newServeMux(newServeTestStore(t))

	rec := get(t, mux, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServe_ListRuns(t *testing.T) {
	st := newServeTestStore(t)
	run, err := st.CreateRun(context.Background(), "prospects.csv", 12)
	require.NoError(t, err)

	rec := get(t, newServeMux(st), "/runs")
	assert.Equal(t, http.StatusOK, rec.Code)

	var runs []model.ScanRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, 12, runs[0].URLCount)
}

func TestServe_ListRuns_EmptyIsArray(t *testing.T) {
	rec := get(t, newServeMux(newServeTestStore(t)), "/runs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServe_GetRun(t *testing.T) {
	st := newServeTestStore(t)
	ctx := context.Background()
	run, err := st.CreateRun(ctx, "prospects.csv", 3)
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, run.ID, model.RunStatusComplete, 1))

	rec := get(t, newServeMux(st), "/runs/"+run.ID)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.ScanRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, 1, got.MatchCount)
}

func TestServe_GetRun_NotFound(t *testing.T) {
	rec := get(t, newServeMux(newServeTestStore(t)), "/runs/no-such-run")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "run not found")
}

func TestServe_RunRecords(t *testing.T) {
	st := newServeTestStore(t)
	ctx := context.Background()
	run, err := st.CreateRun(ctx, "prospects.csv", 1)
	require.NoError(t, err)
	require.NoError(t, st.AddRecords(ctx, run.ID, []model.ClinicRecord{
		{ClinicName: "Bright Smile Dental", WebsiteURL: "https://brightsmile.com", WebsiteProvider: "dentalqore"},
	}))

	rec := get(t, newServeMux(st), "/runs/"+run.ID+"/records")
	assert.Equal(t, http.StatusOK, rec.Code)

	var records []model.ClinicRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "dentalqore", records[0].WebsiteProvider)
}

func TestServe_RunRecords_EmptyIsArray(t *testing.T) {
	st := newServeTestStore(t)
	run, err := st.CreateRun(context.Background(), "prospects.csv", 0)
	require.NoError(t, err)

	rec := get(t, newServeMux(st), "/runs/"+run.ID+"/records")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServe_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	mux := newServeMux(newServeTestStore(t))
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/runs", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
