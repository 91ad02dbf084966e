package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/picsort/internal/imaging"
	"github.com/Veraticus/picsort/internal/llm"
)

// createLLMClient creates the raw vision client from configuration.
// It is shared by every command that talks to the model.
func createLLMClient() (llm.Client, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		ImageDetail: viper.GetString("llm.image_detail"),
		Timeout:     viper.GetDuration("llm.timeout"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	// Check viper first, then environment variable
	cfg.APIKey = viper.GetString("llm.openai_api_key")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// createClassifier wraps the configured client for the sorting engine.
func createClassifier(mode llm.Mode) (*llm.Classifier, error) {
	client, err := createLLMClient()
	if err != nil {
		return nil, err
	}

	classifier, err := llm.NewClassifier(client, llm.ClassifierOptions{
		Mode:      mode,
		RateLimit: viper.GetInt("llm.rate_limit"),
		Image: imaging.Options{
			MaxWidth:    viper.GetInt("image.max_width"),
			JPEGQuality: viper.GetInt("image.jpeg_quality"),
		},
	}, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	return classifier, nil
}
