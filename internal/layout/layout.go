// Package layout prepares the output folder tree and tracks which images
// already live in it.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/model"
)

const dirPerm = 0o750

// Layout is the prepared output tree for one category set.
type Layout struct {
	categories *model.CategorySet
	root       string
}

// Prepare creates the output root, one folder per category, and the failed
// folder. It is idempotent. Failures are fatal *common.IOError values.
func Prepare(categories *model.CategorySet, root string) (*Layout, error) {
	if categories == nil {
		return nil, errors.New("category set is required")
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("output root is required")
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, common.NewIOError("create output folder", root, err)
	}

	for _, folder := range categories.Folders() {
		dir := filepath.Join(root, folder)
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, common.NewIOError("create category folder", dir, err)
		}
	}

	return &Layout{root: root, categories: categories}, nil
}

// Root returns the output root.
func (l *Layout) Root() string {
	return l.root
}

// FolderFor returns the destination folder of a category.
func (l *Layout) FolderFor(cat model.Category) string {
	return filepath.Join(l.root, cat.Folder)
}

// FailedDir returns the folder for unmatched images.
func (l *Layout) FailedDir() string {
	return filepath.Join(l.root, model.FailedFolder)
}

// Index scans every destination folder and returns the set of image names
// already sorted. With includeFailed false, files that exist only in the
// failed folder are not counted, so they get another attempt.
func (l *Layout) Index(includeFailed bool) (*Index, error) {
	idx := &Index{names: make(map[string]string)}

	for _, folder := range l.categories.Folders() {
		if folder == model.FailedFolder && !includeFailed {
			continue
		}
		dir := filepath.Join(l.root, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, common.NewIOError("read folder", dir, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			if _, seen := idx.names[entry.Name()]; !seen {
				idx.names[entry.Name()] = folder
			}
		}
	}

	return idx, nil
}

// Index records which image names are already present in the output tree.
type Index struct {
	names map[string]string
}

// Contains reports whether an image with this file name is already sorted.
func (i *Index) Contains(name string) bool {
	_, ok := i.names[name]
	return ok
}

// FolderOf returns the folder that holds name.
func (i *Index) FolderOf(name string) (string, bool) {
	folder, ok := i.names[name]
	return folder, ok
}

// Add marks name as sorted into folder.
func (i *Index) Add(name, folder string) {
	i.names[name] = folder
}

// Len returns the number of indexed names.
func (i *Index) Len() int {
	return len(i.names)
}

func (i *Index) String() string {
	return fmt.Sprintf("Index(%d images)", len(i.names))
}
