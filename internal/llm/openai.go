package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultMaxTokens   = 300
	defaultTimeout     = 60 * time.Second
	schemaName         = "image_category"
)

// openAIClient implements Client on top of the go-openai SDK. Any
// OpenAI-compatible endpoint works through BaseURL.
type openAIClient struct {
	api         *openai.Client
	model       string
	detail      openai.ImageURLDetail
	temperature float32
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (*openAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	detail, err := parseDetail(cfg.ImageDetail)
	if err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &openAIClient{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       model,
		detail:      detail,
		temperature: float32(cfg.Temperature),
		maxTokens:   maxTokens,
	}, nil
}

func parseDetail(s string) (openai.ImageURLDetail, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return openai.ImageURLDetailAuto, nil
	case "low":
		return openai.ImageURLDetailLow, nil
	case "high":
		return openai.ImageURLDetailHigh, nil
	default:
		return "", fmt.Errorf("invalid image detail %q (want low, high or auto)", s)
	}
}

// ClassifyImage sends one image with the category prompt and parses the answer.
func (c *openAIClient) ClassifyImage(ctx context.Context, req ImageRequest) (ClassificationResponse, error) {
	if req.DataURL == "" {
		return ClassificationResponse{}, errors.New("image data is required")
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: req.Prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    req.DataURL,
							Detail: c.detail,
						},
					},
				},
			},
		},
	}

	if req.Mode == ModeStructured {
		if len(req.Choices) == 0 {
			return ClassificationResponse{}, errors.New("structured mode needs at least one category choice")
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: categorySchema(req.Choices),
				Strict: true,
			},
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return ClassificationResponse{}, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ClassificationResponse{}, fmt.Errorf("no completion choices returned")
	}

	content := resp.Choices[0].Message.Content
	if req.Mode == ModeStructured {
		return parseStructured(content)
	}
	return parseText(content), nil
}

// Ping sends one text-only request to check the credential and model.
func (c *openAIClient) Ping(ctx context.Context) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 20,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Reply with the single word: pong"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// categorySchema builds the strict response schema: category must be one of
// choices, reasoning is free text.
func categorySchema(choices []string) json.Marshaler {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"category": {
				Type:        jsonschema.String,
				Description: "The name of the category the image belongs to.",
				Enum:        choices,
			},
			"reasoning": {
				Type:        jsonschema.String,
				Description: "A short explanation of why the image fits the category.",
			},
		},
		Required:             []string{"category", "reasoning"},
		AdditionalProperties: false,
	}
}
