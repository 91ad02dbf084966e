// Package runlog writes the per-run JSON record of classified images.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/model"
)

// Entry is one image in the run log.
type Entry struct {
	Reasoning *string `json:"reasoning"`
	ImageName string  `json:"image_name"`
	Category  string  `json:"category"`
	Error     string  `json:"error,omitempty"`
}

// Matched reports whether the entry records a category rather than the
// failed sentinel.
func (e Entry) Matched() bool {
	return e.Category != model.FailedFolder
}

// EntryFrom converts a classification result into a log entry.
func EntryFrom(result model.ClassificationResult) Entry {
	return Entry{
		ImageName: result.ImageName,
		Category:  result.CategoryLabel(),
		Reasoning: result.Reasoning,
		Error:     result.Error,
	}
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return "run-" + t.Format("20060102-150405") + ".json"
}

// Writer keeps the log file in step with completed images. Every Append
// rewrites the whole JSON array through a temp file and rename, so the file
// on disk is always a complete, parseable list.
type Writer struct {
	path    string
	entries []Entry
	mu      sync.Mutex
}

// Create starts a new log in dir named after startedAt and writes an empty
// list. An existing log from the same second is never overwritten; the new
// name gets a numeric suffix instead.
func Create(dir string, startedAt time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, common.NewIOError("create log folder", dir, err)
	}

	path := filepath.Join(dir, FileName(startedAt))
	base := strings.TrimSuffix(path, ".json")
	for n := 2; fileExists(path); n++ {
		path = fmt.Sprintf("%s-%d.json", base, n)
	}

	w := &Writer{
		path:    path,
		entries: []Entry{},
	}
	if err := w.flush(); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the log file location.
func (w *Writer) Path() string {
	return w.path
}

// Append records result and flushes the log.
func (w *Writer) Append(result model.ClassificationResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, EntryFrom(result))
	return w.flush()
}

// Len returns the number of entries written.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func (w *Writer) flush() error {
	data, err := json.MarshalIndent(w.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run log: %w", err)
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return common.NewIOError("write run log", tmp, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return common.NewIOError("write run log", w.path, err)
	}
	return nil
}

// Read parses a run log file.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewIOError("read run log", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse run log %s: %w", path, err)
	}
	return entries, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
