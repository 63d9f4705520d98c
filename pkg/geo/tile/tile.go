package tile

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gdstools/gdskit/pkg/fsutil"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
	"github.com/gdstools/gdskit/pkg/ui/progress"
	"github.com/sirupsen/logrus"
)

// DefaultTiles is the tile count applied when none is requested.
const DefaultTiles = 4

// Options control how a raster is cut into tiles.
type Options struct {
	// Folder receives the tiles. Empty derives "<source>_tiles" next to
	// the source file.
	Folder string

	// Tiles is the requested tile count. The grid uses the integer square
	// root per axis, so 9 cuts 3x3. Zero applies DefaultTiles.
	Tiles int

	// Workers caps concurrent tile writes. Zero uses the CPU count.
	Workers int
}

// SplitExtent cuts a raster's extent into an approximately square grid of
// chunks, snapped to cell edges so neighboring chunks share a boundary.
// Each chunk is reported as xmin, ymin, xmax, ymax. Chunks are ordered
// column-major: all row chunks of the first column block come first.
func SplitExtent(path string, count int) ([][4]float64, error) {
	source, err := raster.Read(path)
	if err != nil {
		return nil, err
	}

	return splitQuads(source.Transform, source.Grid.Width, source.Grid.Height, count), nil
}

// Run cuts the source raster into tiles named <source>_<NN>.tif inside the
// output folder and returns their paths in chunk order. Tiles that already
// exist are kept, so interrupted batches resume where they stopped. The
// source cell type and nodata marker carry into every tile.
func Run(ctx context.Context, src string, opts Options, out io.Writer) ([]string, error) {
	if out == nil {
		out = os.Stdout
	}

	count := opts.Tiles
	if count <= 0 {
		count = DefaultTiles
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	source, err := raster.Read(src)
	if err != nil {
		return nil, err
	}

	quads := splitQuads(source.Transform, source.Grid.Width, source.Grid.Height, count)

	folder := opts.Folder
	if folder == "" {
		folder = strings.TrimSuffix(src, filepath.Ext(src)) + "_tiles"
	}

	if err := fsutil.EnsureDir(folder); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	logrus.WithFields(logrus.Fields{
		"src":    src,
		"tiles":  len(quads),
		"folder": folder,
	}).Debug("tiling raster")

	paths := make([]string, len(quads))
	tasks := make([]progress.Task, 0, len(quads))

	for i, quad := range quads {
		dst := filepath.Join(folder, fmt.Sprintf("%s_%02d.tif", base, i))
		paths[i] = dst

		if _, err := os.Stat(dst); err == nil {
			continue
		}

		tasks = append(tasks, progress.Task{
			Name: filepath.Base(dst),
			Fn: func(taskCtx context.Context) error {
				return warp.Run(taskCtx, src, dst, warp.Options{
					Bounds: quad,
					DType:  source.DType,
				}, io.Discard)
			},
		})
	}

	group := progress.NewGroup("Tiling "+filepath.Base(src), "🧩", out, nil).WithLimit(workers)

	if err := group.Run(ctx, tasks...); err != nil {
		return nil, err
	}

	return paths, nil
}

// splitQuads computes the chunk extents for a grid of the given size.
func splitQuads(transform raster.GeoTransform, width, height, count int) [][4]float64 {
	side := int(math.Sqrt(float64(count)))
	if side < 1 {
		side = 1
	}

	cols := chunkSizes(width, side)
	rows := chunkSizes(height, side)

	quads := make([][4]float64, 0, len(cols)*len(rows))

	colStart := 0

	for _, colSpan := range cols {
		rowStart := 0

		for _, rowSpan := range rows {
			x0, y0 := transform.PixelToGeo(float64(colStart), float64(rowStart))
			x1, y1 := transform.PixelToGeo(float64(colStart+colSpan), float64(rowStart+rowSpan))

			quads = append(quads, [4]float64{
				math.Min(x0, x1), math.Min(y0, y1),
				math.Max(x0, x1), math.Max(y0, y1),
			})

			rowStart += rowSpan
		}

		colStart += colSpan
	}

	return quads
}

// chunkSizes splits length cells into count runs, the leading runs one cell
// longer when the division is uneven. More runs than cells collapses to one
// run per cell.
func chunkSizes(length, count int) []int {
	if count > length {
		count = length
	}

	if count < 1 {
		count = 1
	}

	sizes := make([]int, count)
	base := length / count
	extra := length % count

	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}

	return sizes
}
