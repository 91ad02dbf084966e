// Package router copies classified images into their destination folder.
package router

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/layout"
	"github.com/Veraticus/picsort/internal/model"
)

// Decision is where an image goes.
type Decision struct {
	// Category is nil for images routed to the failed folder.
	Category    *model.Category
	Folder      string
	Destination string
}

// Router matches answers against the registry and copies files.
type Router struct {
	categories *model.CategorySet
	layout     *layout.Layout
	dryRun     bool
}

// New creates a router. With dryRun set, Route decides but never copies.
func New(categories *model.CategorySet, l *layout.Layout, dryRun bool) *Router {
	return &Router{categories: categories, layout: l, dryRun: dryRun}
}

// Decide looks answer up by exact, case-sensitive name. Anything else,
// including surrounding whitespace, goes to the failed folder.
func (r *Router) Decide(imagePath, answer string) Decision {
	name := filepath.Base(imagePath)

	if cat, ok := r.categories.Lookup(answer); ok {
		return Decision{
			Category:    &cat,
			Folder:      cat.Folder,
			Destination: filepath.Join(r.layout.FolderFor(cat), name),
		}
	}
	return r.failed(name)
}

func (r *Router) failed(name string) Decision {
	return Decision{
		Folder:      model.FailedFolder,
		Destination: filepath.Join(r.layout.FailedDir(), name),
	}
}

// Route decides the destination for answer and copies the image there.
func (r *Router) Route(imagePath, answer string) (Decision, error) {
	decision := r.Decide(imagePath, answer)
	return decision, r.copy(imagePath, decision.Destination)
}

// RouteFailed copies the image into the failed folder regardless of answer.
func (r *Router) RouteFailed(imagePath string) (Decision, error) {
	decision := r.failed(filepath.Base(imagePath))
	return decision, r.copy(imagePath, decision.Destination)
}

func (r *Router) copy(src, dst string) error {
	if r.dryRun {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return common.NewIOError("copy", dst, err)
	}
	return nil
}

// CopyFile copies src to dst, keeping the source and its permissions. The
// data lands in a temp file first, so dst is either the old file or the
// complete new one. An existing dst is overwritten.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
