// Package engine runs the sorting pipeline: prepare the output tree, then
// classify, route and log each candidate image in turn.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/imaging"
	"github.com/Veraticus/picsort/internal/layout"
	"github.com/Veraticus/picsort/internal/model"
	"github.com/Veraticus/picsort/internal/router"
	"github.com/Veraticus/picsort/internal/runlog"
)

// Skip reasons passed to Observer.OnSkip.
const (
	SkipUnsupported   = "unsupported file type"
	SkipAlreadySorted = "already sorted"
	SkipNotAFile      = "not a regular file"
	SkipUnreadable    = "unreadable entry"
)

// Config holds the per-run options.
type Config struct {
	SourceDir string
	OutputDir string
	// LogDir defaults to OutputDir.
	LogDir      string
	FailFast    bool
	RetryFailed bool
	DryRun      bool
}

// Engine orchestrates one sorting run.
type Engine struct {
	classifier Classifier
	recorder   Recorder
	observer   Observer
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRecorder stores runs and results in r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithObserver reports progress to o.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine around classifier.
func New(classifier Classifier, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		observer:   nopObserver{},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run sorts every supported image in cfg.SourceDir. The returned run is
// never nil once the output tree is prepared, even when err is set, so
// callers can report partial progress.
func (e *Engine) Run(ctx context.Context, cfg Config, categories *model.CategorySet) (*model.Run, error) {
	if e.classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if cfg.SourceDir == "" || cfg.OutputDir == "" {
		return nil, fmt.Errorf("%w: source and output folders are required", common.ErrMissingConfig)
	}

	out, err := layout.Prepare(categories, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Prepared output folders", "root", out.Root(), "folders", len(categories.Folders()))

	sorted, err := out.Index(!cfg.RetryFailed)
	if err != nil {
		return nil, err
	}

	candidates, rejected, err := listCandidates(cfg.SourceDir)
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		ID:        uuid.NewString(),
		StartedAt: e.now(),
		SourceDir: cfg.SourceDir,
		OutputDir: cfg.OutputDir,
		Mode:      string(e.classifier.Mode()),
		Status:    model.RunStatusRunning,
	}

	for _, name := range sortedKeys(rejected) {
		run.Skipped++
		e.observer.OnSkip(name, rejected[name])
		e.logger.Debug("Skipped entry", "image", name, "reason", rejected[name])
	}

	var pending []string
	for _, path := range candidates {
		name := filepath.Base(path)
		switch {
		case !imaging.IsSupported(name):
			run.Skipped++
			e.observer.OnSkip(name, SkipUnsupported)
			e.logger.Debug("Skipped file", "image", name, "reason", SkipUnsupported)
		case sorted.Contains(name):
			run.Skipped++
			e.observer.OnSkip(name, SkipAlreadySorted)
			folder, _ := sorted.FolderOf(name)
			e.logger.Debug("Skipped file", "image", name, "reason", SkipAlreadySorted, "folder", folder)
		default:
			pending = append(pending, path)
		}
	}

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = cfg.OutputDir
	}
	runLog, err := runlog.Create(logDir, run.StartedAt)
	if err != nil {
		return nil, err
	}
	run.LogPath = runLog.Path()

	ledger := e.startRun(ctx, *run)
	e.logger.Info("Starting run",
		"run_id", run.ID,
		"mode", run.Mode,
		"pending", len(pending),
		"skipped", run.Skipped,
		"dry_run", cfg.DryRun)
	e.observer.OnStart(len(pending))

	route := router.New(categories, out, cfg.DryRun)

	var runErr error
	for _, path := range pending {
		if ctx.Err() != nil {
			run.Status = model.RunStatusInterrupted
			break
		}

		result, err := e.process(ctx, cfg, route, categories, path)
		if err != nil {
			if ctx.Err() != nil {
				run.Status = model.RunStatusInterrupted
				break
			}
			run.Status = model.RunStatusAborted
			runErr = err
			break
		}

		if err := runLog.Append(result); err != nil {
			run.Status = model.RunStatusAborted
			runErr = err
			break
		}
		run.Count(result)
		sorted.Add(result.ImageName, filepath.Base(filepath.Dir(result.Destination)))
		e.recordResult(ctx, ledger, run.ID, result)
		e.observer.OnResult(result)
	}

	if run.Status == model.RunStatusRunning {
		run.Status = model.RunStatusCompleted
	}
	run.FinishedAt = e.now()
	e.finishRun(ledger, run)
	e.observer.OnFinish(*run)

	e.logger.Info("Run finished",
		"run_id", run.ID,
		"status", run.Status,
		"processed", run.Processed,
		"matched", run.Matched,
		"unmatched", run.Unmatched,
		"errored", run.Errored,
		"skipped", run.Skipped,
		"log", run.LogPath)

	if runErr != nil {
		return run, runErr
	}
	if run.Status == model.RunStatusInterrupted {
		return run, ctx.Err()
	}
	return run, nil
}

// process classifies and routes one image. Only fatal errors are returned;
// an isolated service failure comes back as an errored result.
func (e *Engine) process(ctx context.Context, cfg Config, route *router.Router, categories *model.CategorySet, path string) (model.ClassificationResult, error) {
	name := filepath.Base(path)
	result := model.ClassificationResult{ImageName: name, SourcePath: path}

	resp, err := e.classifier.Classify(ctx, path, categories)
	if err != nil {
		if ctx.Err() != nil || common.IsFatal(err) || cfg.FailFast {
			return result, err
		}

		e.logger.Warn("Classification failed, routing to failed folder", "image", name, "error", err)
		decision, routeErr := route.RouteFailed(path)
		if routeErr != nil {
			return result, routeErr
		}
		result.Destination = decision.Destination
		result.Outcome = model.OutcomeErrored
		result.Error = err.Error()
		result.ClassifiedAt = e.now()
		return result, nil
	}

	decision, err := route.Route(path, resp.Category)
	if err != nil {
		return result, err
	}

	result.Answer = resp.Category
	result.Reasoning = resp.Reasoning
	result.Destination = decision.Destination
	result.ClassifiedAt = e.now()
	if decision.Category != nil {
		matched := decision.Category.Name
		result.Category = &matched
		result.Outcome = model.OutcomeMatched
	} else {
		result.Outcome = model.OutcomeUnmatched
	}

	e.logger.Info("Classified image",
		"image", name,
		"category", result.CategoryLabel(),
		"answer", resp.Category,
		"destination", result.Destination)

	return result, nil
}

// The ledger is secondary to the run log, so its failures are logged and
// never stop a run.
func (e *Engine) startRun(ctx context.Context, run model.Run) Recorder {
	if e.recorder == nil {
		return nil
	}
	if err := e.recorder.StartRun(ctx, run); err != nil {
		e.logger.Warn("Failed to record run start, ledger disabled for this run", "run_id", run.ID, "error", err)
		return nil
	}
	return e.recorder
}

func (e *Engine) recordResult(ctx context.Context, ledger Recorder, runID string, result model.ClassificationResult) {
	if ledger == nil {
		return
	}
	if err := ledger.RecordResult(ctx, runID, result); err != nil {
		e.logger.Warn("Failed to record result", "run_id", runID, "image", result.ImageName, "error", err)
	}
}

func (e *Engine) finishRun(ledger Recorder, run *model.Run) {
	if ledger == nil {
		return
	}
	// The run context may already be cancelled on interrupt.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ledger.FinishRun(ctx, *run); err != nil {
		e.logger.Warn("Failed to record run finish", "run_id", run.ID, "error", err)
	}
}

// listCandidates returns the files in dir sorted by name. Symlinks are
// followed; entries that do not resolve to a regular file come back in
// rejected with the reason.
func listCandidates(dir string) (files []string, rejected map[string]string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, common.NewIOError("read source folder", dir, err)
	}

	rejected = make(map[string]string)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, statErr := os.Stat(path)
		switch {
		case statErr != nil:
			rejected[entry.Name()] = SkipUnreadable
		case !info.Mode().IsRegular():
			rejected[entry.Name()] = SkipNotAFile
		default:
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, rejected, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
