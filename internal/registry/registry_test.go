package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "categories.json", `[
		{"category": "nature", "description": "landscapes", "folder_name": "nature_pics"},
		{"category": "city", "description": "streets", "folder_name": "city_pics"}
	]`)

	set, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"nature", "city"}, set.Names())
	cat, ok := set.Lookup("city")
	require.True(t, ok)
	assert.Equal(t, model.Category{Name: "city", Description: "streets", Folder: "city_pics"}, cat)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "categories.yaml", `
- category: receipts
  description: photos of paper receipts
  folder_name: receipts
- category: memes
  description: images with overlaid joke text
  folder_name: memes
`)

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"receipts", "memes"}, set.Names())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "malformed json", file: "c.json", content: `[{"category": "nature",`},
		{name: "object instead of list", file: "c.json", content: `{"category": "nature"}`},
		{name: "unknown field", file: "c.json", content: `[{"category": "a", "folder": "a"}]`},
		{name: "trailing data", file: "c.json", content: `[{"category": "a", "folder_name": "a"}] []`},
		{name: "empty list", file: "c.json", content: `[]`},
		{name: "empty yaml", file: "c.yaml", content: ``},
		{
			name:    "duplicate names",
			file:    "c.json",
			content: `[{"category": "a", "folder_name": "a"}, {"category": "a", "folder_name": "b"}]`,
		},
		{name: "missing folder", file: "c.yml", content: "- category: a\n  description: d\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrConfig)

			var cfgErr *common.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, cfgErr.Path, tt.file)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, common.ErrConfig)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoadDuplicateIsDuplicateError(t *testing.T) {
	path := writeFile(t, "c.json", `[{"category": "a", "folder_name": "a"}, {"category": "a", "folder_name": "b"}]`)
	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrDuplicateCategory)
}

func TestLoadRejectsPaddedNames(t *testing.T) {
	path := writeFile(t, "c.json", `[{"category": "nature ", "description": "trees", "folder_name": "nature_pics"}]`)
	_, err := Load(path)
	require.ErrorIs(t, err, common.ErrConfig)
	assert.ErrorIs(t, err, model.ErrPaddedName)
}
