package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func strPtr(s string) *string { return &s }

func testRun(id string, started time.Time) model.Run {
	return model.Run{
		ID:        id,
		StartedAt: started,
		SourceDir: "/in",
		OutputDir: "/out",
		Mode:      "structured",
		LogPath:   "/out/run.json",
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestInMemoryStorage(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(context.Background()))

	_, err = NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestRunLifecycle(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	run := testRun("run-1", started)
	require.NoError(t, store.StartRun(ctx, run))

	results := []model.ClassificationResult{
		{
			ImageName: "a.jpg", SourcePath: "/in/a.jpg", Category: strPtr("nature"), Answer: "nature",
			Reasoning: strPtr("trees"), Destination: "/out/nature_pics/a.jpg", Outcome: model.OutcomeMatched,
			ClassifiedAt: started.Add(time.Second),
		},
		{
			ImageName: "b.png", SourcePath: "/in/b.png", Answer: "Nature",
			Destination: "/out/failed/b.png", Outcome: model.OutcomeUnmatched,
			ClassifiedAt: started.Add(2 * time.Second),
		},
		{
			ImageName: "c.gif", SourcePath: "/in/c.gif", Destination: "/out/failed/c.gif",
			Outcome: model.OutcomeErrored, Error: "status 500", ClassifiedAt: started.Add(3 * time.Second),
		},
	}
	for _, r := range results {
		require.NoError(t, store.RecordResult(ctx, run.ID, r))
	}

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusRunning, got.Status)
	assert.Equal(t, 3, got.Processed)
	assert.Equal(t, 1, got.Matched)
	assert.Equal(t, 1, got.Unmatched)
	assert.Equal(t, 1, got.Errored)
	assert.True(t, got.FinishedAt.IsZero())

	run.Status = model.RunStatusCompleted
	run.FinishedAt = started.Add(time.Minute)
	run.Processed, run.Matched, run.Unmatched, run.Errored, run.Skipped = 3, 1, 1, 1, 4
	require.NoError(t, store.FinishRun(ctx, run))

	got, err = store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusCompleted, got.Status)
	assert.Equal(t, 4, got.Skipped)
	assert.Equal(t, time.Minute, got.Duration())

	stored, err := store.GetResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "a.jpg", stored[0].ImageName)
	require.NotNil(t, stored[0].Category)
	assert.Equal(t, "nature", *stored[0].Category)
	assert.Nil(t, stored[1].Category)
	assert.Equal(t, "Nature", stored[1].Answer)
	assert.Equal(t, model.OutcomeErrored, stored[2].Outcome)
	assert.Equal(t, "status 500", stored[2].Error)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.StartRun(ctx, testRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[2].ID)

	runs, err = store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.StartRun(ctx, model.Run{StartedAt: time.Now()}), ErrInvalidRun)
	assert.ErrorIs(t, store.StartRun(ctx, model.Run{ID: "x"}), ErrInvalidRun)

	_, err := store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = store.FinishRun(ctx, testRun("missing", time.Now()))
	assert.ErrorIs(t, err, common.ErrNotFound)

	bad := []model.ClassificationResult{
		{Outcome: model.OutcomeMatched, Category: strPtr("a")},
		{ImageName: "a.jpg", Outcome: model.OutcomeMatched},
		{ImageName: "a.jpg", Outcome: model.OutcomeUnmatched, Category: strPtr("a")},
		{ImageName: "a.jpg", Outcome: "maybe"},
	}
	for _, r := range bad {
		assert.ErrorIs(t, store.RecordResult(ctx, "run", r), ErrInvalidResult)
	}

	err = store.RecordResult(ctx, "unknown-run", model.ClassificationResult{
		ImageName: "a.jpg", Outcome: model.OutcomeUnmatched, ClassifiedAt: time.Now(),
	})
	require.Error(t, err)
}
