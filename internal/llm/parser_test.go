package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/picsort/internal/model"
)

func TestParseStructured(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantCategory  string
		wantReasoning string
		wantErr       bool
	}{
		{
			name:          "plain json",
			content:       `{"category": "city", "reasoning": "skyline"}`,
			wantCategory:  "city",
			wantReasoning: "skyline",
		},
		{
			name:          "markdown fenced",
			content:       "```json\n{\"category\": \"nature\", \"reasoning\": \"forest\"}\n```",
			wantCategory:  "nature",
			wantReasoning: "forest",
		},
		{
			name:         "category outside the set is passed through",
			content:      `{"category": "Nature", "reasoning": ""}`,
			wantCategory: "Nature",
		},
		{name: "not json", content: "nature", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := parseStructured(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, resp.Category)
			require.NotNil(t, resp.Reasoning)
			assert.Equal(t, tt.wantReasoning, *resp.Reasoning)
		})
	}
}

func TestParseText(t *testing.T) {
	resp := parseText("\n city \n")
	assert.Equal(t, "city", resp.Category)
	assert.Nil(t, resp.Reasoning)
	assert.Equal(t, "\n city \n", resp.Raw)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStructured, mode)

	mode, err = ParseMode("TEXT")
	require.NoError(t, err)
	assert.Equal(t, ModeText, mode)

	_, err = ParseMode("fuzzy")
	require.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	cats := []model.Category{
		{Name: "nature", Description: "landscapes and plants", Folder: "nature_pics"},
		{Name: "city", Description: "streets and buildings", Folder: "city_pics"},
	}

	text := BuildPrompt(cats, ModeText)
	assert.Contains(t, text, "Category: nature, Description: landscapes and plants\n")
	assert.Contains(t, text, "Category: city, Description: streets and buildings\n")
	assert.Contains(t, text, "category name only")
	assert.NotContains(t, text, "nature_pics")

	structured := BuildPrompt(cats, ModeStructured)
	assert.Contains(t, structured, "explain your choice")
}
