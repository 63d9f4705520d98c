package fsutil

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHomePath expands a path beginning with ~/ to the user's home
// directory and converts relative paths to absolute paths.
func ExpandHomePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}

		path = filepath.Join(usr.HomeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to convert to absolute path: %w", err)
		}

		return absPath, nil
	}

	return path, nil
}

// DataPath joins a root data directory to file paths, so callers can address
// project data with short relative names.
type DataPath struct {
	root string
}

// NewDataPath creates a DataPath rooted at the given directory. A leading ~/
// expands to the user's home directory and relative roots become absolute.
func NewDataPath(root string) (DataPath, error) {
	if root == "" {
		return DataPath{}, ErrEmptyDataRoot
	}

	expanded, err := ExpandHomePath(root)
	if err != nil {
		return DataPath{}, fmt.Errorf("failed to expand data root: %w", err)
	}

	return DataPath{root: expanded}, nil
}

// Root returns the absolute root directory.
func (d DataPath) Root() string {
	return d.root
}

// Join joins path elements onto the root directory.
func (d DataPath) Join(elem ...string) string {
	return filepath.Join(append([]string{d.root}, elem...)...)
}
