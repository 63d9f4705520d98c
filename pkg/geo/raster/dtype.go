package raster

import (
	"fmt"
	"strings"
)

// DType identifies a raster cell data type. The names and descriptions
// follow the GDAL data type catalog so gdal-tooling users can carry their
// habits over.
type DType string

// Supported cell data types.
const (
	DTypeUnknown  DType = "Unknown"
	DTypeByte     DType = "Byte"
	DTypeUInt16   DType = "UInt16"
	DTypeInt16    DType = "Int16"
	DTypeUInt32   DType = "UInt32"
	DTypeInt32    DType = "Int32"
	DTypeFloat32  DType = "Float32"
	DTypeFloat64  DType = "Float64"
	DTypeCInt16   DType = "CInt16"
	DTypeCInt32   DType = "CInt32"
	DTypeCFloat32 DType = "CFloat32"
	DTypeCFloat64 DType = "CFloat64"
)

// dtypeInfo describes one cell type for listings and codec dispatch.
type dtypeInfo struct {
	description string
	sizeBytes   int
	signed      bool
	float       bool
	complex     bool
}

//nolint:gochecknoglobals // Type catalog is immutable package configuration.
var dtypeCatalog = map[DType]dtypeInfo{
	DTypeUnknown:  {description: "Unknown or unspecified type"},
	DTypeByte:     {description: "Eight bit unsigned integer", sizeBytes: 1},
	DTypeUInt16:   {description: "Sixteen bit unsigned integer", sizeBytes: 2},
	DTypeInt16:    {description: "Sixteen bit signed integer", sizeBytes: 2, signed: true},
	DTypeUInt32:   {description: "Thirty two bit unsigned integer", sizeBytes: 4},
	DTypeInt32:    {description: "Thirty two bit signed integer", sizeBytes: 4, signed: true},
	DTypeFloat32:  {description: "Thirty two bit floating point", sizeBytes: 4, signed: true, float: true},
	DTypeFloat64:  {description: "Sixty four bit floating point", sizeBytes: 8, signed: true, float: true},
	DTypeCInt16:   {description: "Complex Int16", sizeBytes: 4, signed: true, complex: true},
	DTypeCInt32:   {description: "Complex Int32", sizeBytes: 8, signed: true, complex: true},
	DTypeCFloat32: {description: "Complex Float32", sizeBytes: 8, signed: true, float: true, complex: true},
	DTypeCFloat64: {description: "Complex Float64", sizeBytes: 16, signed: true, float: true, complex: true},
}

// AllDTypes returns every cell type in catalog order.
func AllDTypes() []DType {
	return []DType{
		DTypeByte, DTypeUInt16, DTypeInt16, DTypeUInt32, DTypeInt32,
		DTypeFloat32, DTypeFloat64,
		DTypeCInt16, DTypeCInt32, DTypeCFloat32, DTypeCFloat64,
		DTypeUnknown,
	}
}

// ParseDType resolves a cell type from its name. Matching is
// case-insensitive and tolerates a leading "gdt_" prefix, so "float32",
// "Float32", and "GDT_Float32" all resolve to DTypeFloat32.
func ParseDType(name string) (DType, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.TrimPrefix(normalized, "gdt_")

	for _, dtype := range AllDTypes() {
		if normalized == strings.ToLower(string(dtype)) {
			return dtype, nil
		}
	}

	return DTypeUnknown, fmt.Errorf("%w: %q (available: %s)", ErrUnknownDType, name, dtypeNames())
}

func dtypeNames() string {
	names := make([]string, 0, len(dtypeCatalog))
	for _, dtype := range AllDTypes() {
		names = append(names, string(dtype))
	}

	return strings.Join(names, ", ")
}

// Description returns the human description of the cell type.
func (d DType) Description() string {
	return dtypeCatalog[d].description
}

// Size returns the cell size in bytes, zero for DTypeUnknown.
func (d DType) Size() int {
	return dtypeCatalog[d].sizeBytes
}

// IsComplex reports whether the cell type holds complex samples.
func (d DType) IsComplex() bool {
	return dtypeCatalog[d].complex
}

// IsFloat reports whether the cell type holds floating point samples.
func (d DType) IsFloat() bool {
	return dtypeCatalog[d].float
}

// IsSigned reports whether the cell type holds signed samples.
func (d DType) IsSigned() bool {
	return dtypeCatalog[d].signed
}

// String implements pflag.Value.
func (d DType) String() string {
	return string(d)
}

// Set implements pflag.Value.
func (d *DType) Set(value string) error {
	parsed, err := ParseDType(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Type implements pflag.Value.
func (d *DType) Type() string {
	return "dtype"
}

// Compression identifies a GeoTIFF compression scheme. LZW and JPEG are
// recognized for the sake of clear errors but not implemented by the codec.
type Compression string

// Compression schemes.
const (
	CompressionNone    Compression = "NONE"
	CompressionDeflate Compression = "DEFLATE"
	CompressionLZW     Compression = "LZW"
	CompressionJPEG    Compression = "JPEG"
)

// ParseCompression resolves a compression from its name, case-insensitively.
func ParseCompression(name string) (Compression, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))

	switch Compression(normalized) {
	case CompressionNone, CompressionDeflate, CompressionLZW, CompressionJPEG:
		return Compression(normalized), nil
	}

	return CompressionNone, fmt.Errorf("%w: %q (available: NONE, DEFLATE, LZW, JPEG)",
		ErrUnknownCompression, name)
}

// Supported reports whether the codec can write this compression.
func (c Compression) Supported() bool {
	return c == CompressionNone || c == CompressionDeflate || c == ""
}

// String implements pflag.Value.
func (c Compression) String() string {
	return string(c)
}

// Set implements pflag.Value.
func (c *Compression) Set(value string) error {
	parsed, err := ParseCompression(value)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Type implements pflag.Value.
func (c *Compression) Type() string {
	return "compression"
}
