package crs

import "errors"

// CRS errors.
var (
	// ErrUnknownEPSG indicates an EPSG code outside the built-in registry.
	ErrUnknownEPSG = errors.New("unknown EPSG code")

	// ErrInvalidProj4 indicates a string that cannot be parsed as proj4.
	ErrInvalidProj4 = errors.New("invalid proj4 string")

	// ErrInvalidCRS indicates a value that is neither an EPSG reference nor
	// a proj4 string.
	ErrInvalidCRS = errors.New("invalid coordinate reference system")

	// ErrUnsupportedProjection indicates a projection method this package
	// does not implement.
	ErrUnsupportedProjection = errors.New("unsupported projection")

	// ErrInvalidWKT indicates WKT text that cannot be interpreted.
	ErrInvalidWKT = errors.New("invalid WKT description")

	// ErrUndefinedCRS indicates an operation that requires a defined CRS.
	ErrUndefinedCRS = errors.New("coordinate reference system is undefined")
)
