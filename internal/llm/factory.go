package llm

import (
	"fmt"
	"strings"
	"time"
)

// Config holds configuration for the vision client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	ImageDetail string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// NewClient creates a raw client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
