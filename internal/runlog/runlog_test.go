package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/picsort/internal/model"
)

func strPtr(s string) *string { return &s }

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "run-20261019-150405.json", FileName(ts))
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := Create(dir, time.Now())
	require.NoError(t, err)

	entries, err := Read(w.Path())
	require.NoError(t, err)
	assert.Empty(t, entries, "a fresh log is an empty list")

	results := []model.ClassificationResult{
		{ImageName: "a.jpg", Category: strPtr("nature"), Reasoning: strPtr("trees"), Outcome: model.OutcomeMatched},
		{ImageName: "b.png", Answer: "Nature", Outcome: model.OutcomeUnmatched},
		{ImageName: "c.gif", Outcome: model.OutcomeErrored, Error: "classify c.gif: status 500"},
	}
	for _, r := range results {
		require.NoError(t, w.Append(r))
	}
	assert.Equal(t, 3, w.Len())

	entries, err = Read(w.Path())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "a.jpg", entries[0].ImageName)
	assert.Equal(t, "nature", entries[0].Category)
	require.NotNil(t, entries[0].Reasoning)
	assert.Equal(t, "trees", *entries[0].Reasoning)
	assert.True(t, entries[0].Matched())

	assert.Equal(t, "b.png", entries[1].ImageName)
	assert.Equal(t, "failed", entries[1].Category)
	assert.Nil(t, entries[1].Reasoning)
	assert.False(t, entries[1].Matched())

	assert.Equal(t, "c.gif", entries[2].ImageName)
	assert.Equal(t, "classify c.gif: status 500", entries[2].Error)

	assert.NoFileExists(t, w.Path()+".tmp")
}

func TestEntryJSONShape(t *testing.T) {
	w, err := Create(t.TempDir(), time.Now())
	require.NoError(t, err)
	require.NoError(t, w.Append(model.ClassificationResult{ImageName: "b.png", Outcome: model.OutcomeUnmatched}))

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"image_name":"b.png","category":"failed","reasoning":null}]`, string(data))
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = Read(bad)
	require.Error(t, err)
}

func TestCreateNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

	first, err := Create(dir, ts)
	require.NoError(t, err)
	require.NoError(t, first.Append(model.ClassificationResult{ImageName: "a.jpg", Outcome: model.OutcomeUnmatched}))

	second, err := Create(dir, ts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run-20261019-150405-2.json"), second.Path())

	entries, err := Read(first.Path())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
