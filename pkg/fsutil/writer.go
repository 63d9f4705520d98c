package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirPerm is applied to directories created for outputs.
	dirPerm os.FileMode = 0o755
	// filePerm is applied to files written by TryWriteFile.
	filePerm os.FileMode = 0o644
)

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	err := os.MkdirAll(filepath.Clean(path), dirPerm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// TryWriteFile writes content to a file path, handling force/overwrite
// logic. When the file exists and force is false the write is skipped.
// Parent directories are created as needed. The written content is returned
// for chaining.
func TryWriteFile(content string, output string, force bool) (string, error) {
	if output == "" {
		return "", ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	if !force {
		_, err := os.Stat(output)
		if err == nil {
			return content, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to check file %s: %w", output, err)
		}
	}

	err := EnsureDir(filepath.Dir(output))
	if err != nil {
		return "", err
	}

	err = os.WriteFile(output, []byte(content), filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return content, nil
}
