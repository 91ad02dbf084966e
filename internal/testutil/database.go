// Package testutil provides shared fixtures for picsort tests: an isolated
// ledger database, sample images on disk and ready-made category files.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/picsort/internal/storage"
)

// SetupTestDB creates a migrated in-memory ledger that is closed when the
// test ends.
//
// Example:
//
//	store := testutil.SetupTestDB(t)
//	runs, err := store.ListRuns(ctx, 0)
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
