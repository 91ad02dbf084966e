// Package config provides path and default-location helpers for picsort.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, before expansion.
const (
	DefaultDatabasePath   = "$HOME/.local/share/picsort/picsort.db"
	DefaultConfigDir      = "$HOME/.config/picsort"
	DefaultCategoriesFile = "categories.json"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// ResolvePath expands path and makes it absolute. An empty path falls back
// to def.
func ResolvePath(path, def string) (string, error) {
	if path == "" {
		path = def
	}
	path = ExpandPath(path)
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}
