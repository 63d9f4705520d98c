package mapvalues

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gdstools/gdskit/pkg/cli/parallel"
	"github.com/gdstools/gdskit/pkg/fsutil"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/progress"
	"github.com/sirupsen/logrus"
)

// ErrNoValues indicates an empty value mapping.
var ErrNoValues = errors.New("no value mapping provided")

// Options describe how cell values translate.
type Options struct {
	// Values maps source cell values to their replacements.
	Values map[float64]float64

	// ErrValue replaces cells missing from the mapping, the nodata marker
	// included. Nil applies the conventional default.
	ErrValue *float64

	// Workers caps concurrent files in a batch. Zero uses the CPU count.
	Workers int
}

// Run remaps every cell of src through the value mapping and writes the
// result to dst as Float32. Cells absent from the mapping, the nodata
// marker included, become the error value. An existing dst is kept
// untouched, so interrupted batches resume where they stopped.
func Run(ctx context.Context, src, dst string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("remap canceled: %w", err)
	}

	if len(opts.Values) == 0 {
		return ErrNoValues
	}

	if err := fsutil.EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	if _, err := os.Stat(dst); err == nil {
		logrus.WithField("dst", dst).Debug("keeping existing output")

		return nil
	}

	source, err := raster.Read(src)
	if err != nil {
		return err
	}

	errValue := raster.DefaultNoData
	if opts.ErrValue != nil {
		errValue = *opts.ErrValue
	}

	logrus.WithFields(logrus.Fields{
		"src":    src,
		"dst":    dst,
		"values": len(opts.Values),
	}).Debug("remapping cells")

	for i, value := range source.Grid.Data {
		mapped, ok := opts.Values[value]
		if !ok {
			mapped = errValue
		}

		source.Grid.Data[i] = mapped
	}

	marker := raster.DefaultNoData

	return raster.Write(dst, source, raster.WriteOptions{
		DType:  raster.DTypeFloat32,
		NoData: &marker,
	})
}

// RunBatch remaps every source into the output folder, one file per worker
// at a time, naming each output after its source. A failing file is
// reported and skipped rather than stopping the batch; the joined failures
// come back alongside the full output path list.
func RunBatch(
	ctx context.Context,
	srcs []string,
	folder string,
	opts Options,
	out io.Writer,
) ([]string, error) {
	if out == nil {
		out = os.Stdout
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if err := fsutil.EnsureDir(folder); err != nil {
		return nil, err
	}

	syncOut := parallel.NewSyncWriter(out)
	results := parallel.NewResults[string]()

	paths := make([]string, len(srcs))
	tasks := make([]progress.Task, 0, len(srcs))

	for i, src := range srcs {
		dst := filepath.Join(folder, filepath.Base(src))
		paths[i] = dst

		tasks = append(tasks, progress.Task{
			Name: filepath.Base(src),
			Fn: func(taskCtx context.Context) error {
				err := Run(taskCtx, src, dst, opts)
				if err != nil {
					notify.Errorf(syncOut, "%s: %v", src, err)
					results.AddError(fmt.Errorf("%s: %w", src, err))

					return nil
				}

				results.Add(dst)

				return nil
			},
		})
	}

	group := progress.NewGroup("Remapping rasters", "🎨", syncOut, nil).WithLimit(workers)

	if err := group.Run(ctx, tasks...); err != nil {
		return nil, err
	}

	return paths, errors.Join(results.Errors()...)
}
