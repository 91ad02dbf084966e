package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategories() []Category {
	return []Category{
		{Name: "nature", Description: "landscapes and plants", Folder: "nature_pics"},
		{Name: "city", Description: "streets and buildings", Folder: "city_pics"},
	}
}

func TestNewCategorySet(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		cats    []Category
	}{
		{name: "valid", cats: testCategories()},
		{name: "empty", cats: nil, wantErr: ErrNoCategories},
		{
			name:    "blank name",
			cats:    []Category{{Name: " ", Folder: "x"}},
			wantErr: ErrEmptyCategoryName,
		},
		{
			name:    "padded name",
			cats:    []Category{{Name: " nature", Folder: "nature_pics"}},
			wantErr: ErrPaddedName,
		},
		{
			name:    "trailing newline in name",
			cats:    []Category{{Name: "city\n", Folder: "city_pics"}},
			wantErr: ErrPaddedName,
		},
		{
			name:    "blank folder",
			cats:    []Category{{Name: "nature", Folder: ""}},
			wantErr: ErrEmptyFolder,
		},
		{
			name:    "duplicate name",
			cats:    append(testCategories(), Category{Name: "nature", Folder: "more_nature"}),
			wantErr: ErrDuplicateCategory,
		},
		{
			name:    "path traversal",
			cats:    []Category{{Name: "nature", Folder: "../etc"}},
			wantErr: ErrInvalidFolder,
		},
		{
			name:    "reserved failed folder",
			cats:    []Category{{Name: "junk", Folder: FailedFolder}},
			wantErr: ErrInvalidFolder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewCategorySet(tt.cats)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, set)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.cats), set.Len())
		})
	}
}

func TestCategorySetLookupIsExact(t *testing.T) {
	set, err := NewCategorySet(testCategories())
	require.NoError(t, err)

	cat, ok := set.Lookup("nature")
	require.True(t, ok)
	assert.Equal(t, "nature_pics", cat.Folder)

	for _, miss := range []string{"Nature", " nature", "nature ", "", "failed"} {
		_, ok := set.Lookup(miss)
		assert.False(t, ok, "lookup %q should miss", miss)
	}
}

func TestCategorySetOrderAndFolders(t *testing.T) {
	cats := append(testCategories(), Category{Name: "parks", Folder: "nature_pics"})
	set, err := NewCategorySet(cats)
	require.NoError(t, err)

	assert.Equal(t, []string{"nature", "city", "parks"}, set.Names())
	assert.Equal(t, []string{"nature_pics", "city_pics", FailedFolder}, set.Folders())

	got := set.Categories()
	got[0].Name = "mutated"
	assert.True(t, set.Contains("nature"))
}

func TestClassificationResultLabel(t *testing.T) {
	name := "city"
	assert.Equal(t, "city", ClassificationResult{Category: &name}.CategoryLabel())
	assert.Equal(t, FailedFolder, ClassificationResult{}.CategoryLabel())
}
