package rasterize

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/ui/progress"
	shp "github.com/jonas-p/go-shp"
	"github.com/sirupsen/logrus"
)

// Options describe the target grid and how features burn into it.
type Options struct {
	// Attribute names the DBF field whose values are burned.
	Attribute string

	// TargetSRS is the coordinate system stamped on the output, an EPSG
	// reference or proj4 string. Feature coordinates are taken as already
	// being in this system.
	TargetSRS string

	// Transform is the target grid geometry.
	Transform raster.GeoTransform

	// Width and Height are the target grid dimensions in cells.
	Width  int
	Height int

	// NoData is the marker for cells no geometry reaches. Nil applies the
	// conventional default.
	NoData *float64

	// AllTouched burns every cell a polygon boundary passes through, not
	// just cells whose center falls inside.
	AllTouched bool

	// DType is the output cell type, Float32 when unset.
	DType raster.DType

	// Overwrite allows replacing an existing destination.
	Overwrite bool
}

// Run burns the features of the src shapefile into a new raster at dst.
// Progress prints to out in the classic gdal console rhythm.
func Run(ctx context.Context, src, dst string, opts Options, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	if _, err := os.Stat(dst); err == nil && !opts.Overwrite {
		return fmt.Errorf("%w: %s", raster.ErrDestinationExists, dst)
	}

	if opts.Attribute == "" {
		return ErrMissingAttribute
	}

	if opts.Width < 1 || opts.Height < 1 {
		return fmt.Errorf("%w: %d x %d", ErrInvalidSize, opts.Width, opts.Height)
	}

	if _, _, err := opts.Transform.GeoToPixel(0, 0); err != nil {
		return err
	}

	system, err := crs.Parse(opts.TargetSRS)
	if err != nil {
		return fmt.Errorf("failed to parse target system: %w", err)
	}

	reader, err := shp.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer reader.Close()

	fieldIndex, err := findField(reader.Fields(), opts.Attribute)
	if err != nil {
		return err
	}

	nodata := raster.DefaultNoData
	if opts.NoData != nil {
		nodata = *opts.NoData
	}

	grid := raster.NewGrid(opts.Width, opts.Height)
	grid.Fill(nodata)

	logrus.WithFields(logrus.Fields{
		"width":     opts.Width,
		"height":    opts.Height,
		"attribute": opts.Attribute,
	}).Debug("rasterizing layer")

	total := reader.AttributeCount()
	meter := progress.NewMeter(out)

	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rasterize canceled: %w", err)
		}

		index, shape := reader.Shape()

		raw := strings.TrimSpace(reader.ReadAttribute(index, fieldIndex))

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: feature %d has %s=%q", ErrAttributeValue, index, opts.Attribute, raw)
		}

		if err := burn(grid, opts.Transform, shape, value, opts.AllTouched); err != nil {
			return fmt.Errorf("feature %d: %w", index, err)
		}

		if total > 0 {
			meter.Update(float64(index+1) / float64(total))
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("failed to read shapefile: %w", err)
	}

	meter.Finish()

	result := &raster.Dataset{
		Grid:      grid,
		Transform: opts.Transform,
		CRS:       system,
	}

	dtype := opts.DType
	if dtype == "" || dtype == raster.DTypeUnknown {
		dtype = raster.DTypeFloat32
	}

	return raster.Write(dst, result, raster.WriteOptions{
		DType:     dtype,
		NoData:    &nodata,
		Overwrite: opts.Overwrite,
	})
}

// findField resolves an attribute name to its DBF field index, matching
// case-insensitively the way OGR does.
func findField(fields []shp.Field, name string) (int, error) {
	available := make([]string, 0, len(fields))

	for i, field := range fields {
		fieldName := field.String()
		if strings.EqualFold(fieldName, name) {
			return i, nil
		}

		available = append(available, fieldName)
	}

	return 0, fmt.Errorf("%w: %q (available: %s)",
		ErrUnknownAttribute, name, strings.Join(available, ", "))
}
