package warp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdstools/gdskit/pkg/geo/raster"
)

// OptionDoc describes one option for the listings rendered by the options
// command.
type OptionDoc struct {
	Name string
	Type string
	Doc  string
}

// Registry of documented option sets per module.
//
//nolint:gochecknoglobals // Option catalog is immutable package configuration.
var moduleDocs = map[string][]OptionDoc{
	"warp": {
		{Name: "dstSRS", Type: "srs", Doc: "output coordinate system, an EPSG reference or proj4 string"},
		{Name: "srcSRS", Type: "srs", Doc: "override the source coordinate system"},
		{Name: "xRes", Type: "float", Doc: "output cell width in target units"},
		{Name: "yRes", Type: "float", Doc: "output cell height in target units"},
		{Name: "outputBounds", Type: "floats", Doc: "output extent as xmin,ymin,xmax,ymax in target units"},
		{Name: "outputType", Type: "dtype", Doc: "output cell type, Float32 when omitted"},
		{Name: "resampleAlg", Type: "resample", Doc: "sampling kernel, near or bilinear"},
		{Name: "srcNodata", Type: "float", Doc: "source nodata marker for masking"},
		{Name: "dstNodata", Type: "float", Doc: "nodata marker written to the output"},
		{Name: "targetAlignedPixels", Type: "bool", Doc: "snap the extent outward onto the resolution grid"},
		{Name: "creationOptions", Type: "strings", Doc: "creation settings such as COMPRESS=DEFLATE"},
	},
	"rasterize": {
		{Name: "attribute", Type: "string", Doc: "field whose values are burned into cells"},
		{Name: "outputSRS", Type: "srs", Doc: "coordinate system of the target grid"},
		{Name: "outputBounds", Type: "floats", Doc: "target extent as xmin,ymin,xmax,ymax"},
		{Name: "width", Type: "int", Doc: "number of columns in the target grid"},
		{Name: "height", Type: "int", Doc: "number of rows in the target grid"},
		{Name: "noData", Type: "float", Doc: "marker for cells no geometry touches, -9999 when omitted"},
		{Name: "allTouched", Type: "bool", Doc: "burn every cell the boundary passes through"},
		{Name: "outputType", Type: "dtype", Doc: "output cell type, Float32 when omitted"},
	},
}

// listing order for Modules and the miss message.
//
//nolint:gochecknoglobals // Option catalog is immutable package configuration.
var moduleOrder = []string{"warp", "rasterize"}

// NormalizeModule lowers a module name and strips the gdal prefix and
// underscores, so "gdalwarp", "Warp", and "warp" all resolve alike.
func NormalizeModule(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "gdal", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	return normalized
}

// Modules returns the documented module names in listing order.
func Modules() []string {
	modules := make([]string, len(moduleOrder))
	copy(modules, moduleOrder)

	return modules
}

// ModuleOptions returns the option docs for a module. The error lists the
// available modules on a miss.
func ModuleOptions(module string) ([]OptionDoc, error) {
	normalized := NormalizeModule(module)

	docs, ok := moduleDocs[normalized]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)",
			ErrUnknownModule, module, strings.Join(moduleOrder, ", "))
	}

	return docs, nil
}

// Describe renders the option listing for a module.
func Describe(module string) (string, error) {
	docs, err := ModuleOptions(module)
	if err != nil {
		return "", err
	}

	var builder strings.Builder

	for _, doc := range docs {
		fmt.Fprintf(&builder, "  %-20s %-9s %s\n", doc.Name, doc.Type, doc.Doc)
	}

	return builder.String(), nil
}

// Validate checks name=value pairs against a module's option set. Unknown
// names and unparsable values are rejected with the offending option named.
func Validate(module string, pairs map[string]string) error {
	docs, err := ModuleOptions(module)
	if err != nil {
		return err
	}

	byName := make(map[string]OptionDoc, len(docs))
	for _, doc := range docs {
		byName[strings.ToLower(doc.Name)] = doc
	}

	for name, value := range pairs {
		doc, ok := byName[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}

		if err := checkOptionValue(doc, value); err != nil {
			return err
		}
	}

	return nil
}

// checkOptionValue parses a value according to its option type.
func checkOptionValue(doc OptionDoc, value string) error {
	reject := func() error {
		return fmt.Errorf("%w: %s", ErrUnknownOption, doc.Name)
	}

	switch doc.Type {
	case "float":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return reject()
		}
	case "int":
		if _, err := strconv.Atoi(value); err != nil {
			return reject()
		}
	case "bool":
		if _, err := strconv.ParseBool(value); err != nil {
			return reject()
		}
	case "floats":
		parts := strings.Split(value, ",")
		if len(parts) != 4 {
			return reject()
		}

		for _, part := range parts {
			if _, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
				return reject()
			}
		}
	case "dtype":
		if _, err := raster.ParseDType(value); err != nil {
			return reject()
		}
	case "resample":
		if _, err := ParseResample(value); err != nil {
			return reject()
		}
	case "srs", "string", "strings":
		if strings.TrimSpace(value) == "" {
			return reject()
		}
	}

	return nil
}
