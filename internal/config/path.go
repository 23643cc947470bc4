// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DataDir returns the application data directory, honoring
// DEALFLOW_DATA_DIR when set.
func DataDir() string {
	if dir := os.Getenv("DEALFLOW_DATA_DIR"); dir != "" {
		return ExpandPath(dir)
	}
	return ExpandPath("~/.local/share/dealflow")
}

// DefaultDBPath is where the SQLite database lives unless overridden.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "dealflow.db")
}

// PrefsPath is where the UI preference file lives.
func PrefsPath() string {
	return filepath.Join(DataDir(), "prefs.json")
}

// BlobDir is the root of the attachment blob store.
func BlobDir() string {
	return filepath.Join(DataDir(), "blobs")
}
