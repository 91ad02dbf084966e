package model

import (
	"errors"
	"fmt"
	"strings"
)

// FailedFolder is the output subfolder for images that match no category.
const FailedFolder = "failed"

// Category validation errors.
var (
	ErrNoCategories      = errors.New("at least one category is required")
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
	ErrPaddedName        = errors.New("category name has leading or trailing whitespace")
	ErrEmptyFolder       = errors.New("category folder cannot be empty")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrInvalidFolder     = errors.New("invalid category folder")
)

// Category is a named bucket an image can be sorted into.
type Category struct {
	Name        string
	Description string
	Folder      string
}

// CategorySet is the ordered, immutable registry of categories for one run.
// Lookups are exact and case-sensitive.
type CategorySet struct {
	byName     map[string]int
	categories []Category
}

// NewCategorySet validates cats and builds the lookup index.
func NewCategorySet(cats []Category) (*CategorySet, error) {
	if len(cats) == 0 {
		return nil, ErrNoCategories
	}

	set := &CategorySet{
		categories: make([]Category, len(cats)),
		byName:     make(map[string]int, len(cats)),
	}

	for i, cat := range cats {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrEmptyCategoryName, i)
		}
		// Text answers are trimmed, so a padded name could never match.
		if cat.Name != strings.TrimSpace(cat.Name) {
			return nil, fmt.Errorf("%w: %q", ErrPaddedName, cat.Name)
		}
		if err := validateFolder(cat.Folder); err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}
		if _, exists := set.byName[cat.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, cat.Name)
		}
		set.byName[cat.Name] = i
		set.categories[i] = cat
	}

	return set, nil
}

func validateFolder(folder string) error {
	if strings.TrimSpace(folder) == "" {
		return ErrEmptyFolder
	}
	if folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}
	if folder == FailedFolder {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidFolder, folder)
	}
	return nil
}

// Lookup returns the category whose name equals name exactly.
func (s *CategorySet) Lookup(name string) (Category, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Category{}, false
	}
	return s.categories[i], true
}

// Contains reports whether name is a registered category.
func (s *CategorySet) Contains(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Categories returns a copy of the categories in definition order.
func (s *CategorySet) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Names returns category names in definition order.
func (s *CategorySet) Names() []string {
	names := make([]string, len(s.categories))
	for i, cat := range s.categories {
		names[i] = cat.Name
	}
	return names
}

// Folders returns every destination folder name, including FailedFolder last.
func (s *CategorySet) Folders() []string {
	folders := make([]string, 0, len(s.categories)+1)
	seen := make(map[string]bool, len(s.categories))
	for _, cat := range s.categories {
		if seen[cat.Folder] {
			continue
		}
		seen[cat.Folder] = true
		folders = append(folders, cat.Folder)
	}
	return append(folders, FailedFolder)
}

// Len returns the number of categories.
func (s *CategorySet) Len() int {
	return len(s.categories)
}
