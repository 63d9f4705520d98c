package rasterize

import "errors"

var (
	// ErrMissingAttribute indicates a burn request without an attribute name.
	ErrMissingAttribute = errors.New("attribute name is required")

	// ErrUnknownAttribute indicates an attribute missing from the DBF table.
	ErrUnknownAttribute = errors.New("attribute is not available")

	// ErrAttributeValue indicates an attribute value that does not parse
	// as a number.
	ErrAttributeValue = errors.New("attribute value is not numeric")

	// ErrInvalidSize indicates target dimensions below one cell.
	ErrInvalidSize = errors.New("invalid raster dimensions")

	// ErrUnsupportedGeometry indicates a shape type the burner cannot
	// handle.
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
)
