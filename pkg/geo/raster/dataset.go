package raster

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/raster/geotiff"
)

// DefaultNoData is the conventional marker for cells without data.
const DefaultNoData = -9999.0

// Dataset is an in-memory single band raster with its georeferencing.
type Dataset struct {
	Grid      *Grid
	Transform GeoTransform
	CRS       crs.CRS
	DType     DType
	NoData    *float64
	Compress  Compression
	Metadata  map[string]string
}

// Read loads a GeoTIFF from disk. The embedded nodata marker is reported
// but not applied; callers mask cells explicitly when they need NaN holes.
func Read(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster: %w", err)
	}
	defer file.Close()

	img, err := geotiff.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	grid, err := NewGridFrom(img.Width, img.Height, img.Data)
	if err != nil {
		return nil, err
	}

	dataset := &Dataset{
		Grid:     grid,
		CRS:      resolveCRS(img),
		DType:    sampleDType(img.SampleFormat, img.BitsPerSample),
		NoData:   img.NoData,
		Compress: CompressionNone,
		Metadata: img.Metadata,
	}

	if img.Deflate {
		dataset.Compress = CompressionDeflate
	}

	if img.HasTransform {
		dataset.Transform = GeoTransform(img.Transform)
	}

	return dataset, nil
}

// WriteOptions control how a dataset lands on disk. The zero value keeps
// the dataset's own cell type and compression and refuses to overwrite.
type WriteOptions struct {
	// DType converts cells on write; DTypeUnknown keeps the dataset's type,
	// falling back to Float32 for datasets that never touched disk.
	DType DType

	// Compress selects NONE or DEFLATE output.
	Compress Compression

	// NoData overrides the marker written to the file. NaN cells are
	// replaced with the marker before encoding.
	NoData *float64

	// Overwrite allows replacing an existing file.
	Overwrite bool
}

// Write stores a dataset as a little endian GeoTIFF.
func Write(path string, dataset *Dataset, opts WriteOptions) error {
	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrDestinationExists, path)
		}
	}

	dtype := opts.DType
	if dtype == "" || dtype == DTypeUnknown {
		dtype = dataset.DType
	}

	if dtype == "" || dtype == DTypeUnknown {
		dtype = DTypeFloat32
	}

	format, bits, err := dtypeSample(dtype)
	if err != nil {
		return err
	}

	compress := opts.Compress
	if compress == "" {
		compress = dataset.Compress
	}

	if !compress.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCompression, compress)
	}

	nodata := opts.NoData
	if nodata == nil {
		nodata = dataset.NoData
	}

	data := dataset.Grid.Data
	if nodata != nil {
		work := dataset.Grid.Clone()
		work.UnmaskNoData(*nodata)
		data = work.Data
	}

	img := &geotiff.Image{
		Width:         dataset.Grid.Width,
		Height:        dataset.Grid.Height,
		BitsPerSample: bits,
		SampleFormat:  format,
		Deflate:       compress == CompressionDeflate,
		Data:          data,
		NoData:        nodata,
		Metadata:      dataset.Metadata,
	}

	if dataset.Transform != (GeoTransform{}) {
		img.Transform = dataset.Transform
		img.HasTransform = true
	}

	if dataset.CRS.Defined() {
		img.ModelType = geotiff.ModelTypeProjected
		if dataset.CRS.IsGeographic() {
			img.ModelType = geotiff.ModelTypeGeographic
		}

		img.RasterType = geotiff.RasterTypePixelIsArea
		img.EPSG = dataset.CRS.EPSG()
		img.Citation = dataset.CRS.Proj4()
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create raster: %w", err)
	}

	if err := geotiff.Encode(file, img); err != nil {
		file.Close()

		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}

// ResolveNoData returns the marker to treat as nodata: the embedded one
// when present, otherwise the fallback, lowered to the grid minimum when
// the data dips below it.
func (d *Dataset) ResolveNoData(fallback float64) float64 {
	if d.NoData != nil {
		return *d.NoData
	}

	if minimum, ok := d.Grid.Min(); ok && minimum < fallback {
		return minimum
	}

	return fallback
}

// resolveCRS maps geokeys onto the crs registry, falling back to a proj4
// citation for user-defined systems.
func resolveCRS(img *geotiff.Image) crs.CRS {
	if img.EPSG != 0 {
		if parsed, err := crs.FromEPSG(img.EPSG); err == nil {
			return parsed
		}
	}

	if strings.HasPrefix(img.Citation, "+") {
		if parsed, err := crs.FromProj4(img.Citation); err == nil {
			return parsed
		}
	}

	return crs.CRS{}
}

// dtypeSample maps a cell type onto its TIFF sample encoding.
func dtypeSample(dtype DType) (geotiff.SampleFormat, int, error) {
	switch dtype {
	case DTypeByte:
		return geotiff.SampleFormatUint, 8, nil
	case DTypeUInt16:
		return geotiff.SampleFormatUint, 16, nil
	case DTypeInt16:
		return geotiff.SampleFormatInt, 16, nil
	case DTypeUInt32:
		return geotiff.SampleFormatUint, 32, nil
	case DTypeInt32:
		return geotiff.SampleFormatInt, 32, nil
	case DTypeFloat32:
		return geotiff.SampleFormatFloat, 32, nil
	case DTypeFloat64:
		return geotiff.SampleFormatFloat, 64, nil
	case DTypeCInt16, DTypeCInt32, DTypeCFloat32, DTypeCFloat64:
		return 0, 0, fmt.Errorf("%w: %s", ErrComplexUnsupported, dtype)
	}

	return 0, 0, fmt.Errorf("%w: %q", ErrUnknownDType, dtype)
}

// sampleDType maps a TIFF sample encoding back onto a cell type.
func sampleDType(format geotiff.SampleFormat, bits int) DType {
	switch {
	case format == geotiff.SampleFormatUint && bits == 8:
		return DTypeByte
	case format == geotiff.SampleFormatUint && bits == 16:
		return DTypeUInt16
	case format == geotiff.SampleFormatInt && bits == 16:
		return DTypeInt16
	case format == geotiff.SampleFormatUint && bits == 32:
		return DTypeUInt32
	case format == geotiff.SampleFormatInt && bits == 32:
		return DTypeInt32
	case format == geotiff.SampleFormatFloat && bits == 32:
		return DTypeFloat32
	case format == geotiff.SampleFormatFloat && bits == 64:
		return DTypeFloat64
	}

	return DTypeUnknown
}
