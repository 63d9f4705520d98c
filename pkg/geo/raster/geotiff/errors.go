package geotiff

import "errors"

var (
	// ErrNotTIFF indicates input that does not start with a TIFF header.
	ErrNotTIFF = errors.New("not a tiff file")

	// ErrTruncated indicates a file shorter than its directory promises.
	ErrTruncated = errors.New("tiff file is truncated")

	// ErrMissingTag indicates a required baseline tag is absent.
	ErrMissingTag = errors.New("required tiff tag is missing")

	// ErrUnsupportedLayout indicates a TIFF feature outside the codec's
	// subset, such as tiled organization or multi band images.
	ErrUnsupportedLayout = errors.New("unsupported tiff layout")

	// ErrUnsupportedCompression indicates a compression scheme the codec
	// does not implement.
	ErrUnsupportedCompression = errors.New("unsupported tiff compression")

	// ErrUnsupportedSampleType indicates a bits-per-sample and sample
	// format combination the codec does not implement.
	ErrUnsupportedSampleType = errors.New("unsupported sample type")

	// ErrDataLength indicates image data whose length does not match the
	// declared width and height.
	ErrDataLength = errors.New("image data length does not match dimensions")
)
