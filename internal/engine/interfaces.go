package engine

import (
	"context"

	"github.com/Veraticus/picsort/internal/llm"
	"github.com/Veraticus/picsort/internal/model"
)

// Classifier defines the contract for turning one image into a category answer.
type Classifier interface {
	Classify(ctx context.Context, path string, categories *model.CategorySet) (llm.ClassificationResponse, error)
	Mode() llm.Mode
}

// Recorder persists runs and their per-image results.
type Recorder interface {
	StartRun(ctx context.Context, run model.Run) error
	RecordResult(ctx context.Context, runID string, result model.ClassificationResult) error
	FinishRun(ctx context.Context, run model.Run) error
}

// Observer receives progress as a run advances.
type Observer interface {
	OnStart(total int)
	OnResult(result model.ClassificationResult)
	OnSkip(name, reason string)
	OnFinish(run model.Run)
}

type nopObserver struct{}

func (nopObserver) OnStart(int)                         {}
func (nopObserver) OnResult(model.ClassificationResult) {}
func (nopObserver) OnSkip(string, string)               {}
func (nopObserver) OnFinish(model.Run)                  {}
