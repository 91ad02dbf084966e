package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/picsort/internal/model"
)

func strPtr(s string) *string { return &s }

func TestPlainProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, true)

	p.OnSkip("notes.txt", "unsupported file type")
	p.OnStart(2)
	p.OnResult(model.ClassificationResult{ImageName: "a.jpg", Category: strPtr("nature"), Outcome: model.OutcomeMatched})
	p.OnResult(model.ClassificationResult{ImageName: "b.png", Answer: "Nature", Outcome: model.OutcomeUnmatched})
	p.OnFinish(model.Run{})

	text := out.String()
	assert.Contains(t, text, "notes.txt (unsupported file type)")
	assert.Contains(t, text, "Sorting 2 images")
	assert.Contains(t, text, "a.jpg → nature")
	assert.Contains(t, text, `b.png → failed (answer "Nature")`)
}

func TestBarProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, false)

	p.OnSkip("notes.txt", "unsupported file type")
	p.OnStart(2)
	p.OnResult(model.ClassificationResult{ImageName: "a.jpg", Category: strPtr("nature"), Outcome: model.OutcomeMatched})
	p.OnFinish(model.Run{Status: model.RunStatusInterrupted})

	assert.NotContains(t, out.String(), "notes.txt")
	assert.Nil(t, p.bar)
}

func TestProgressNothingToDo(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, false)
	p.OnStart(0)
	p.OnFinish(model.Run{})

	assert.Contains(t, out.String(), "Nothing new to sort")
}

func TestDescribeResult(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		result model.ClassificationResult
	}{
		{
			name:   "matched",
			result: model.ClassificationResult{ImageName: "a.jpg", Category: strPtr("city"), Outcome: model.OutcomeMatched},
			want:   "a.jpg → city",
		},
		{
			name:   "unmatched",
			result: model.ClassificationResult{ImageName: "b.png", Answer: "", Outcome: model.OutcomeUnmatched},
			want:   `b.png → failed (answer "")`,
		},
		{
			name:   "errored",
			result: model.ClassificationResult{ImageName: "c.gif", Error: "timeout", Outcome: model.OutcomeErrored},
			want:   "c.gif → failed (timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, DescribeResult(tt.result), tt.want)
		})
	}
}

func TestOutcomeStyles(t *testing.T) {
	outcomes := []model.Outcome{model.OutcomeMatched, model.OutcomeUnmatched, model.OutcomeErrored}
	seen := map[string]model.Outcome{}
	for _, o := range outcomes {
		fg := OutcomeStyle(o).GetForeground()
		key := fmt.Sprint(fg)
		assert.NotEqual(t, fmt.Sprint(MutedStyle.GetForeground()), key, "outcome %s should have its own colour", o)
		_, dup := seen[key]
		assert.False(t, dup, "outcome %s shares a colour", o)
		seen[key] = o
	}

	assert.Equal(t, MutedStyle.GetForeground(), OutcomeStyle(model.Outcome("bogus")).GetForeground())

	assert.Contains(t, FormatOutcome(model.OutcomeMatched, "a.jpg"), "✓ a.jpg")
	assert.Contains(t, FormatOutcome(model.OutcomeUnmatched, "b.png"), "? b.png")
	assert.Contains(t, FormatOutcome(model.OutcomeErrored, "c.gif"), "✗ c.gif")
	assert.Contains(t, DescribeResult(model.ClassificationResult{ImageName: "c.gif", Error: "timeout", Outcome: model.OutcomeErrored}), "✗ c.gif")
}

func TestRenderSummary(t *testing.T) {
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	run := model.Run{
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		OutputDir:  "/out",
		LogPath:    "/out/run-20261019-120000.json",
		Status:     model.RunStatusCompleted,
		Processed:  3,
		Matched:    2,
		Unmatched:  1,
		Skipped:    4,
	}

	summary := RenderSummary(run, true)
	assert.Contains(t, summary, "Sorted 3 images")
	assert.Contains(t, summary, "dry run")
	assert.Contains(t, summary, "/out/run-20261019-120000.json")
	assert.Contains(t, summary, "3s")

	assert.Contains(t, CompletionMessage(run), "Image sorting completed")
	run.Errored = 1
	assert.Contains(t, CompletionMessage(run), "1 errored images")
	run.Status = model.RunStatusAborted
	assert.Contains(t, CompletionMessage(run), "aborted")
}

func TestRenderTables(t *testing.T) {
	runs := RenderRunsTable([]model.Run{{ID: "abc", Status: model.RunStatusCompleted, Mode: "text", Processed: 7}})
	assert.Contains(t, runs, "abc")
	assert.Contains(t, runs, "completed")

	results := RenderResultsTable([]model.ClassificationResult{
		{ImageName: "a.jpg", Category: strPtr("nature"), Outcome: model.OutcomeMatched, Reasoning: strPtr(strings.Repeat("x", 100))},
		{ImageName: "b.png", Outcome: model.OutcomeErrored, Error: "boom"},
	})
	assert.Contains(t, results, "a.jpg")
	assert.Contains(t, results, "…")
	assert.Contains(t, results, "boom")

	cats := RenderCategoriesTable([]model.Category{
		{Name: "nature", Description: "Outdoors", Folder: "nature_pics"},
		{Name: "city", Folder: "city_pics"},
	})
	assert.Contains(t, cats, "nature_pics/")
	assert.Contains(t, cats, "(no description)")
}

func TestInterruptHandler(t *testing.T) {
	var out syncBuffer
	handler := NewInterruptHandler(&out)

	ctx := handler.HandleInterrupts(context.Background())
	handler.interrupt()
	handler.interrupt()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context should be canceled after an interrupt")
	}

	require.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Sorting interrupted!"))
	assert.Contains(t, out.String(), "recorded in the run log")
}

func TestInterruptHandlerStopsWithContext(t *testing.T) {
	handler := NewInterruptHandler(nil)
	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)
	cancel()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
