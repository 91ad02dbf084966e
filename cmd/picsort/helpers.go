package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/config"
	"github.com/Veraticus/picsort/internal/model"
	"github.com/Veraticus/picsort/internal/registry"
	"github.com/Veraticus/picsort/internal/storage"
)

// initStorage opens the run ledger with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := config.ResolvePath(viper.GetString("database.path"), config.DefaultDatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadCategories reads the configured definition file.
func loadCategories() (*model.CategorySet, string, error) {
	path, err := config.ResolvePath(viper.GetString("sort.categories"), config.DefaultCategoriesFile)
	if err != nil {
		return nil, "", common.NewConfigError(viper.GetString("sort.categories"), err)
	}

	set, err := registry.Load(path)
	if err != nil {
		return nil, path, err
	}
	return set, path, nil
}

// requireDir resolves a folder setting that must be provided.
func requireDir(key, flag string) (string, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return "", common.NewUserError(fmt.Sprintf("--%s is required", flag), common.ErrMissingConfig)
	}
	path, err := config.ResolvePath(raw, "")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", flag, err)
	}
	return path, nil
}
