package vector

import "errors"

// Vector errors.
var (
	// ErrMissingProjection indicates a shapefile without a .prj sidecar.
	ErrMissingProjection = errors.New("shapefile has no projection sidecar")

	// ErrUnsupportedShape indicates a geometry the operation cannot convert.
	ErrUnsupportedShape = errors.New("unsupported shape type")

	// ErrEmptyTable indicates a delimited file without a header row.
	ErrEmptyTable = errors.New("table has no header row")

	// ErrMissingColumn indicates a header without a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrBadCoordinate indicates a coordinate cell that is not numeric.
	ErrBadCoordinate = errors.New("coordinate value is not numeric")
)
