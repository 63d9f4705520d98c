package v1alpha1

import "errors"

var (
	// ErrInvalidAPIVersion is returned when a project configuration declares
	// an apiVersion other than gdskit.dev/v1alpha1.
	ErrInvalidAPIVersion = errors.New("invalid apiVersion")

	// ErrInvalidKind is returned when a project configuration declares a kind
	// other than Project.
	ErrInvalidKind = errors.New("invalid kind")

	// ErrInvalidWorkers is returned when the worker cap is negative.
	ErrInvalidWorkers = errors.New("workers must be zero or positive")

	// ErrInvalidDType is returned when the default cell type is not one of
	// the supported raster cell types.
	ErrInvalidDType = errors.New("invalid cell type")

	// ErrInvalidResample is returned when the default sampling kernel is not
	// a supported resampling method.
	ErrInvalidResample = errors.New("invalid resampling method")

	// ErrInvalidCompress is returned when the default compression is not a
	// recognized compression scheme.
	ErrInvalidCompress = errors.New("invalid compression")
)
