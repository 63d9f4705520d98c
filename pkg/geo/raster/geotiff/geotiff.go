package geotiff

import (
	"fmt"
	"math"
)

// Baseline and extension TIFF tags used by the codec.
const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagPhotometric     = 262
	tagStripOffsets    = 273
	tagSamplesPerPixel = 277
	tagRowsPerStrip    = 278
	tagStripByteCounts = 279
	tagPlanarConfig    = 284
	tagPredictor       = 317
	tagTileWidth       = 322
	tagSampleFormat    = 339

	// GeoTIFF tags.
	tagModelPixelScale     = 33550
	tagModelTiepoint       = 33922
	tagModelTransformation = 34264
	tagGeoKeyDirectory     = 34735
	tagGeoDoubleParams     = 34736
	tagGeoAsciiParams      = 34737

	// GDAL private tags.
	tagGDALMetadata = 42112
	tagGDALNoData   = 42113
)

// TIFF field types.
const (
	typeByte   = 1
	typeASCII  = 2
	typeShort  = 3
	typeLong   = 4
	typeDouble = 12
)

// TIFF compression codes. Code 32946 is the deprecated deflate assignment
// some writers still emit; both carry a zlib stream.
const (
	compressionNone       = 1
	compressionLZW        = 5
	compressionJPEG       = 7
	compressionDeflate    = 8
	compressionDeflateOld = 32946
)

// SampleFormat mirrors the TIFF SampleFormat tag values.
type SampleFormat uint16

// Sample formats the codec understands.
const (
	SampleFormatUint  SampleFormat = 1
	SampleFormatInt   SampleFormat = 2
	SampleFormatFloat SampleFormat = 3
)

// GeoKey ids used by the codec.
const (
	keyModelType      = 1024
	keyRasterType     = 1025
	keyCitation       = 1026
	keyGeographicType = 2048
	keyProjectedCS    = 3072
	keyPCSCitation    = 3073
)

// GeoKey model types and the user-defined marker.
const (
	// ModelTypeProjected marks projected coordinate systems in geokeys.
	ModelTypeProjected = 1
	// ModelTypeGeographic marks geographic coordinate systems in geokeys.
	ModelTypeGeographic = 2

	// RasterTypePixelIsArea is the cell-as-area convention gdal uses.
	RasterTypePixelIsArea = 1

	// userDefined is the geokey value for systems without an EPSG code.
	userDefined = 32767
)

// Image is a decoded single band raster. Cell values are held as float64
// regardless of the on-disk sample type.
type Image struct {
	Width  int
	Height int

	// BitsPerSample and SampleFormat describe the on-disk cell type.
	BitsPerSample int
	SampleFormat  SampleFormat

	// Deflate enables zlib compressed strips on encode and reports them
	// on decode.
	Deflate bool

	// Data holds cells in row-major order, length Width*Height.
	Data []float64

	// Transform holds the six affine coefficients mapping pixel to world
	// coordinates in gdal's order. Valid only when HasTransform is set.
	Transform    [6]float64
	HasTransform bool

	// ModelType is ModelTypeProjected or ModelTypeGeographic, zero when
	// the file carries no geokeys.
	ModelType  int
	RasterType int

	// EPSG is the coordinate system code, zero when the file declares a
	// user-defined system. Citation then carries the proj4 string.
	EPSG     int
	Citation string

	// NoData is the GDAL nodata marker, nil when absent.
	NoData *float64

	// Metadata holds GDAL metadata items, nil when absent.
	Metadata map[string]string
}

// sampleBytes returns the per-cell byte width.
func (img *Image) sampleBytes() int {
	return img.BitsPerSample / 8
}

// validateSampleType rejects type combinations outside the codec's subset.
func validateSampleType(format SampleFormat, bits int) error {
	switch format {
	case SampleFormatUint:
		if bits == 8 || bits == 16 || bits == 32 {
			return nil
		}
	case SampleFormatInt:
		if bits == 16 || bits == 32 {
			return nil
		}
	case SampleFormatFloat:
		if bits == 32 || bits == 64 {
			return nil
		}
	}

	return fmt.Errorf("%w: format %d with %d bits per sample", ErrUnsupportedSampleType, format, bits)
}

// clampRound converts a cell value to an integer sample within [lo, hi].
// NaN maps to zero; callers replace nodata cells before encoding.
func clampRound(value, lo, hi float64) float64 {
	if math.IsNaN(value) {
		return 0
	}

	rounded := math.Round(value)
	if rounded < lo {
		return lo
	}

	if rounded > hi {
		return hi
	}

	return rounded
}
