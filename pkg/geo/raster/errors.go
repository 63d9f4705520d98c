package raster

import "errors"

// Raster errors.
var (
	// ErrUnknownDType indicates a cell type name that is not recognized.
	ErrUnknownDType = errors.New("unknown data type")

	// ErrUnknownCompression indicates a compression name that is not recognized.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrUnsupportedCompression indicates a recognized compression the codec
	// does not implement.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrComplexUnsupported indicates a complex cell type was requested for IO.
	ErrComplexUnsupported = errors.New("complex data types are not supported for raster IO")

	// ErrDestinationExists indicates the destination file already exists and
	// overwrite was not requested.
	ErrDestinationExists = errors.New("destination exists")

	// ErrBandOutOfRange indicates a band index outside the file's band count.
	ErrBandOutOfRange = errors.New("band out of range")

	// ErrNoGeoreference indicates a raster without a geotransform where one
	// is required.
	ErrNoGeoreference = errors.New("raster has no georeference")

	// ErrGridShape indicates grid dimensions that do not match their data.
	ErrGridShape = errors.New("grid dimensions do not match data length")
)
