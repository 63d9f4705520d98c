package fsutil

import "errors"

// Filesystem errors.
var (
	// ErrEmptyOutputPath indicates an empty output path was provided.
	ErrEmptyOutputPath = errors.New("output path is empty")

	// ErrEmptyDataRoot indicates a DataPath was created without a root directory.
	ErrEmptyDataRoot = errors.New("data root is empty")
)
