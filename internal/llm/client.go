package llm

import (
	"context"
	"fmt"
	"strings"
)

// Mode selects the response contract requested from the model.
type Mode string

// Supported modes.
const (
	// ModeStructured asks for {"category", "reasoning"} with category
	// restricted to the registered names.
	ModeStructured Mode = "structured"
	// ModeText asks for a bare category name in free text.
	ModeText Mode = "text"
)

// ParseMode validates a mode string from config.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStructured, "":
		return ModeStructured, nil
	case ModeText:
		return ModeText, nil
	default:
		return "", fmt.Errorf("unsupported classification mode: %q (want structured or text)", s)
	}
}

// Client defines the interface for vision model providers.
type Client interface {
	ClassifyImage(ctx context.Context, req ImageRequest) (ClassificationResponse, error)
	Ping(ctx context.Context) (string, error)
}

// ImageRequest is one classification call.
type ImageRequest struct {
	ImageName    string
	DataURL      string
	SystemPrompt string
	Prompt       string
	Mode         Mode
	// Choices is the closed set of category names for ModeStructured.
	Choices []string
}

// ClassificationResponse contains the model's answer.
type ClassificationResponse struct {
	// Reasoning is nil in text mode.
	Reasoning *string
	Category  string
	Raw       string
}
