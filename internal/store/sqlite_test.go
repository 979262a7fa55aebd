package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLite_CreateAndGetRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "prospects.csv", 25)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)
	assert.Equal(t, 25, run.URLCount)
	assert.Nil(t, run.FinishedAt)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "prospects.csv", got.Source)
	assert.Equal(t, model.RunStatusRunning, got.Status)
	assert.Nil(t, got.FinishedAt)
}

func TestSQLite_CompleteRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "prospects.csv", 10)
	require.NoError(t, err)

	require.NoError(t, st.CompleteRun(ctx, run.ID, model.RunStatusComplete, 3))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, 3, got.MatchCount)
	require.NotNil(t, got.FinishedAt)
	assert.False(t, got.FinishedAt.IsZero())
}

func TestSQLite_CompleteRun_NotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.CompleteRun(context.Background(), "no-such-run", model.RunStatusComplete, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListRuns_FilterAndLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a, err := st.CreateRun(ctx, "a.csv", 5)
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "b.csv", 5)
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, a.ID, model.RunStatusComplete, 2))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	limited, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_AddAndListRecords(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "prospects.csv", 2)
	require.NoError(t, err)

	records := []model.ClinicRecord{
		{ClinicName: "Bright Smile Dental", WebsiteURL: "https://brightsmile.com", WebsiteProvider: "dentalqore"},
		{ClinicName: "Lakeside Family Medicine", WebsiteURL: "http://lakesidefm.com", WebsiteProvider: "tebra"},
	}
	require.NoError(t, st.AddRecords(ctx, run.ID, records))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestSQLite_AddRecords_EmptyIsNoop(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "prospects.csv", 0)
	require.NoError(t, err)
	require.NoError(t, st.AddRecords(ctx, run.ID, nil))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
