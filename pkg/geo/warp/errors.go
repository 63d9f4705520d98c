package warp

import "errors"

var (
	// ErrNoOptions indicates a warp request with neither options nor a
	// template to derive the target grid from.
	ErrNoOptions = errors.New("no warp options provided")

	// ErrUnknownModule indicates an option lookup for a module outside
	// the registry.
	ErrUnknownModule = errors.New("module options are not available")

	// ErrUnknownOption indicates an option name outside a module's set,
	// or a value that does not parse as the option's type.
	ErrUnknownOption = errors.New("option is not available or formatted incorrectly")

	// ErrUnknownResample indicates an unsupported resampling algorithm.
	ErrUnknownResample = errors.New("unknown resampling algorithm")

	// ErrInvalidBounds indicates an output extent whose minimum does not
	// sit below its maximum.
	ErrInvalidBounds = errors.New("invalid output bounds")

	// ErrInvalidResolution indicates a zero or negative cell size.
	ErrInvalidResolution = errors.New("invalid output resolution")

	// ErrSourceCRS indicates a source raster with no usable coordinate
	// system and no srcSRS override.
	ErrSourceCRS = errors.New("source raster has no coordinate system")
)
