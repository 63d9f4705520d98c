package helpers

import (
	"path/filepath"

	"github.com/gdstools/gdskit/pkg/fsutil"
)

// ResolveDataPath anchors a relative path under the configured data root.
// Absolute paths and empty roots pass through unchanged.
func ResolveDataPath(root, path string) (string, error) {
	if root == "" || path == "" || filepath.IsAbs(path) {
		return path, nil
	}

	dataPath, err := fsutil.NewDataPath(root)
	if err != nil {
		return "", err
	}

	return dataPath.Join(path), nil
}

// ResolveDataPaths applies ResolveDataPath to every path, failing on the
// first bad root.
func ResolveDataPaths(root string, paths []string) ([]string, error) {
	resolved := make([]string, 0, len(paths))

	for _, path := range paths {
		result, err := ResolveDataPath(root, path)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, result)
	}

	return resolved, nil
}
