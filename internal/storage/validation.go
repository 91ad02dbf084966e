package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/picsort/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidRun    = errors.New("invalid run")
	ErrInvalidResult = errors.New("invalid result")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: nil run", ErrInvalidRun)
	}
	if run.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	return nil
}

func validateResult(result *model.ClassificationResult) error {
	if result.ImageName == "" {
		return fmt.Errorf("%w: missing image name", ErrInvalidResult)
	}
	switch result.Outcome {
	case model.OutcomeMatched:
		if result.Category == nil {
			return fmt.Errorf("%w: matched result without category", ErrInvalidResult)
		}
	case model.OutcomeUnmatched, model.OutcomeErrored:
		if result.Category != nil {
			return fmt.Errorf("%w: %s result with category", ErrInvalidResult, result.Outcome)
		}
	default:
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidResult, result.Outcome)
	}
	return nil
}
