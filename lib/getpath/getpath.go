// Package getpath resolves paths given on the command line or stored in
// settings.
package getpath

import (
	"os"
	"path/filepath"
	"strings"
)

// GetPath returns an absolute, cleaned path. A leading "~" is replaced with
// the home directory. Empty paths are returned unchanged.
func GetPath(filename string) string {
	if filename == "" {
		return ""
	}
	if filename == "~" || strings.HasPrefix(filename, "~/") || strings.HasPrefix(filename, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			filename = filepath.Join(home, filename[1:])
		}
	}
	if abs, err := filepath.Abs(filename); err == nil {
		return abs
	}
	return filepath.Clean(filename)
}

// Exists returns true if the path names an existing file or directory.
func Exists(filename string) bool {
	if filename == "" {
		return false
	}
	_, err := os.Stat(filename)
	return err == nil
}

// IsDir returns true if the path names an existing directory.
func IsDir(filename string) bool {
	if filename == "" {
		return false
	}
	st, err := os.Stat(filename)
	return err == nil && st.IsDir()
}
