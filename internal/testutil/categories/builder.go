// Package categories provides a fluent builder for category sets used in
// tests.
//
// Example usage:
//
//	set := categories.NewBuilder(t).
//		WithScenario().
//		WithCategory("pets", "cats and dogs", "pet_pics").
//		Build()
package categories

import (
	"encoding/json"
	"testing"

	"github.com/Veraticus/picsort/internal/model"
	"github.com/Veraticus/picsort/internal/testutil"
)

// Common category names used across tests.
const (
	Nature = "nature"
	City   = "city"
)

// Builder collects categories in insertion order.
type Builder struct {
	t          *testing.T
	categories []model.Category
}

// NewBuilder creates a new category builder for the given test.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithCategory appends one category.
func (b *Builder) WithCategory(name, description, folder string) *Builder {
	b.categories = append(b.categories, model.Category{
		Name:        name,
		Description: description,
		Folder:      folder,
	})
	return b
}

// WithScenario adds the nature and city categories most tests route into.
func (b *Builder) WithScenario() *Builder {
	return b.
		WithCategory(Nature, "Landscapes, plants and animals outdoors", "nature_pics").
		WithCategory(City, "Streets, buildings and skylines", "city_pics")
}

// Build validates the collected categories and fails the test on error.
func (b *Builder) Build() *model.CategorySet {
	b.t.Helper()

	set, err := model.NewCategorySet(b.categories)
	if err != nil {
		b.t.Fatalf("failed to build categories: %v", err)
	}
	return set
}

// WriteJSON writes the collected categories as a definition file under dir
// and returns its path.
func (b *Builder) WriteJSON(dir string) string {
	b.t.Helper()

	type definition struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		FolderName  string `json:"folder_name"`
	}

	defs := make([]definition, len(b.categories))
	for i, c := range b.categories {
		defs[i] = definition{Category: c.Name, Description: c.Description, FolderName: c.Folder}
	}

	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		b.t.Fatalf("failed to marshal categories: %v", err)
	}
	return testutil.WriteFile(b.t, dir, "categories.json", data)
}
