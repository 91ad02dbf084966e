package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseStructured decodes the {"category", "reasoning"} object. The category
// is returned as sent; membership is checked by the router.
func parseStructured(content string) (ClassificationResponse, error) {
	var jsonResp struct {
		Reasoning *string `json:"reasoning"`
		Category  string  `json:"category"`
	}

	cleaned := cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(cleaned), &jsonResp); err != nil {
		return ClassificationResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return ClassificationResponse{
		Category:  jsonResp.Category,
		Reasoning: jsonResp.Reasoning,
		Raw:       content,
	}, nil
}

// parseText takes the free-text answer as the category name, minus the
// surrounding whitespace models tend to add.
func parseText(content string) ClassificationResponse {
	return ClassificationResponse{
		Category: strings.TrimSpace(content),
		Raw:      content,
	}
}

// cleanMarkdownWrapper strips a ```json fence some models add around JSON.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[nl+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
