package warp

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/ui/progress"
	"github.com/sirupsen/logrus"
)

// boundarySamples is the number of points walked along each source edge
// when deriving the target extent, since projected edges can bow outside
// the corner box.
const boundarySamples = 21

// Run warps src into dst. The target grid comes from the options; fields
// left unset derive from the source raster. Progress prints to out in the
// classic gdal console rhythm.
func Run(ctx context.Context, src, dst string, opts Options, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	if _, err := os.Stat(dst); err == nil && !opts.Overwrite {
		return fmt.Errorf("%w: %s", raster.ErrDestinationExists, dst)
	}

	if opts.IsZero() {
		return ErrNoOptions
	}

	source, err := raster.Read(src)
	if err != nil {
		return err
	}

	if _, _, err := source.Transform.GeoToPixel(0, 0); err != nil {
		return fmt.Errorf("source %s: %w", src, err)
	}

	srcCRS, dstCRS, err := resolveSystems(source, opts)
	if err != nil {
		return err
	}

	target, err := targetGrid(source, srcCRS, dstCRS, opts)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"width":  target.width,
		"height": target.height,
		"xres":   target.xres,
		"yres":   target.yres,
		"dstSRS": dstCRS.Name(),
	}).Debug("computed warp target grid")

	srcNoData := opts.SrcNoData
	if srcNoData == nil {
		srcNoData = source.NoData
	}

	work := source.Grid
	if srcNoData != nil {
		work = source.Grid.Clone()
		work.MaskNoData(*srcNoData)
	}

	var transformer *crs.Transformer
	if !dstCRS.Equal(srcCRS) {
		transformer, err = crs.NewTransformer(dstCRS, srcCRS)
		if err != nil {
			return err
		}
	}

	sample := sampleNearest
	if opts.Resample == ResampleBilinear {
		sample = sampleBilinear
	}

	fmt.Fprintf(out, "Processing %s :\n", dst)

	meter := progress.NewMeter(out)
	grid := raster.NewGrid(target.width, target.height)

	for row := range target.height {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("warp canceled: %w", err)
		}

		for col := range target.width {
			x, y := target.transform.PixelToGeo(float64(col)+0.5, float64(row)+0.5)

			if transformer != nil {
				x, y = transformer.Transform(x, y)
			}

			if math.IsNaN(x) || math.IsNaN(y) {
				grid.Set(row, col, math.NaN())

				continue
			}

			srcCol, srcRow, _ := source.Transform.GeoToPixel(x, y)
			grid.Set(row, col, sample(work, srcCol, srcRow))
		}

		meter.Update(float64(row+1) / float64(target.height))
	}

	meter.Finish()

	dstNoData := opts.DstNoData
	if dstNoData == nil {
		dstNoData = srcNoData
	}

	dtype := opts.DType
	if dtype == "" || dtype == raster.DTypeUnknown {
		dtype = raster.DTypeFloat32
	}

	result := &raster.Dataset{
		Grid:      grid,
		Transform: target.transform,
		CRS:       dstCRS,
	}

	return raster.Write(dst, result, raster.WriteOptions{
		DType:     dtype,
		Compress:  opts.Compress,
		NoData:    dstNoData,
		Overwrite: opts.Overwrite,
	})
}

// resolveSystems settles the working coordinate systems from the options
// and the source raster.
func resolveSystems(source *raster.Dataset, opts Options) (crs.CRS, crs.CRS, error) {
	srcCRS := source.CRS

	if opts.SrcSRS != "" {
		parsed, err := crs.Parse(opts.SrcSRS)
		if err != nil {
			return crs.CRS{}, crs.CRS{}, fmt.Errorf("failed to parse srcSRS: %w", err)
		}

		srcCRS = parsed
	}

	if !srcCRS.Defined() {
		return crs.CRS{}, crs.CRS{}, ErrSourceCRS
	}

	dstCRS := srcCRS

	if opts.DstSRS != "" {
		parsed, err := crs.Parse(opts.DstSRS)
		if err != nil {
			return crs.CRS{}, crs.CRS{}, fmt.Errorf("failed to parse dstSRS: %w", err)
		}

		dstCRS = parsed
	}

	return srcCRS, dstCRS, nil
}

// gridSpec is a resolved target raster shape.
type gridSpec struct {
	width     int
	height    int
	xres      float64
	yres      float64
	transform raster.GeoTransform
}

// targetGrid computes the output shape from bounds and resolution, deriving
// missing pieces from the source.
func targetGrid(source *raster.Dataset, srcCRS, dstCRS crs.CRS, opts Options) (gridSpec, error) {
	sxmin, symin, sxmax, symax, err := projectExtent(source, srcCRS, dstCRS)
	if err != nil {
		return gridSpec{}, err
	}

	xmin, ymin, xmax, ymax := sxmin, symin, sxmax, symax
	if opts.hasBounds() {
		xmin, ymin, xmax, ymax = opts.Bounds[0], opts.Bounds[1], opts.Bounds[2], opts.Bounds[3]
	}

	if xmin >= xmax || ymin >= ymax {
		return gridSpec{}, fmt.Errorf("%w: [%g %g %g %g]", ErrInvalidBounds, xmin, ymin, xmax, ymax)
	}

	xres := math.Abs(opts.XRes)
	yres := math.Abs(opts.YRes)

	// Without an explicit resolution the source cell size carries over,
	// measured across the projected source extent.
	if xres == 0 {
		xres = (sxmax - sxmin) / float64(source.Grid.Width)
	}

	if yres == 0 {
		yres = (symax - symin) / float64(source.Grid.Height)
	}

	if xres <= 0 || yres <= 0 || math.IsNaN(xres) || math.IsNaN(yres) {
		return gridSpec{}, fmt.Errorf("%w: %g x %g", ErrInvalidResolution, xres, yres)
	}

	if opts.TargetAlignedPixels {
		xmin = math.Floor(xmin/xres) * xres
		ymin = math.Floor(ymin/yres) * yres
		xmax = math.Ceil(xmax/xres) * xres
		ymax = math.Ceil(ymax/yres) * yres
	}

	// The epsilon keeps float error in the division from adding a pixel
	// when the span is an exact multiple of the resolution.
	const pixelEpsilon = 1e-9

	width := int(math.Ceil((xmax-xmin)/xres - pixelEpsilon))
	height := int(math.Ceil((ymax-ymin)/yres - pixelEpsilon))

	if width < 1 {
		width = 1
	}

	if height < 1 {
		height = 1
	}

	return gridSpec{
		width:     width,
		height:    height,
		xres:      xres,
		yres:      yres,
		transform: raster.GeoTransform{xmin, xres, 0, ymax, 0, -yres},
	}, nil
}

// projectExtent walks the source boundary through the transformer and
// takes the enclosing box.
func projectExtent(source *raster.Dataset, srcCRS, dstCRS crs.CRS) (float64, float64, float64, float64, error) {
	sxmin, symin, sxmax, symax := source.Transform.Bounds(source.Grid.Width, source.Grid.Height)

	if srcCRS.Equal(dstCRS) {
		return sxmin, symin, sxmax, symax, nil
	}

	transformer, err := crs.NewTransformer(srcCRS, dstCRS)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)

	consider := func(x, y float64) {
		px, py := transformer.Transform(x, y)
		if math.IsNaN(px) || math.IsNaN(py) {
			return
		}

		xmin = math.Min(xmin, px)
		xmax = math.Max(xmax, px)
		ymin = math.Min(ymin, py)
		ymax = math.Max(ymax, py)
	}

	for i := 0; i <= boundarySamples; i++ {
		t := float64(i) / boundarySamples

		consider(sxmin+t*(sxmax-sxmin), symin)
		consider(sxmin+t*(sxmax-sxmin), symax)
		consider(sxmin, symin+t*(symax-symin))
		consider(sxmax, symin+t*(symax-symin))
	}

	if math.IsInf(xmin, 1) {
		return 0, 0, 0, 0, fmt.Errorf("%w: no part of the source projects into %s",
			ErrInvalidBounds, dstCRS.Name())
	}

	return xmin, ymin, xmax, ymax, nil
}

// sampleNearest picks the cell containing the fractional pixel coordinate,
// NaN outside the grid.
func sampleNearest(grid *raster.Grid, col, row float64) float64 {
	c := int(math.Floor(col))
	r := int(math.Floor(row))

	if c < 0 || r < 0 || c >= grid.Width || r >= grid.Height {
		return math.NaN()
	}

	return grid.At(r, c)
}

// sampleBilinear blends the four surrounding cell centers, renormalizing
// around nodata holes.
func sampleBilinear(grid *raster.Grid, col, row float64) float64 {
	fc := col - 0.5
	fr := row - 0.5
	c0 := int(math.Floor(fc))
	r0 := int(math.Floor(fr))
	dx := fc - float64(c0)
	dy := fr - float64(r0)

	var sum, weight float64

	for dr := 0; dr <= 1; dr++ {
		for dc := 0; dc <= 1; dc++ {
			c := c0 + dc
			r := r0 + dr

			if c < 0 || r < 0 || c >= grid.Width || r >= grid.Height {
				continue
			}

			value := grid.At(r, c)
			if math.IsNaN(value) {
				continue
			}

			wc := 1 - dx
			if dc == 1 {
				wc = dx
			}

			wr := 1 - dy
			if dr == 1 {
				wr = dy
			}

			sum += value * wc * wr
			weight += wc * wr
		}
	}

	if weight == 0 {
		return math.NaN()
	}

	return sum / weight
}
