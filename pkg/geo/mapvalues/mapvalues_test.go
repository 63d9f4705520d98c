package mapvalues_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/mapvalues"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClasses(t *testing.T, path string, data []float64, nodata *float64) {
	t.Helper()

	grid, err := raster.NewGridFrom(2, 2, data)
	require.NoError(t, err)

	system, err := crs.FromEPSG(32613)
	require.NoError(t, err)

	dataset := &raster.Dataset{
		Grid:      grid,
		Transform: raster.GeoTransform{0, 30, 0, 60, 0, -30},
		CRS:       system,
		NoData:    nodata,
	}

	require.NoError(t, raster.Write(path, dataset, raster.WriteOptions{DType: raster.DTypeFloat64}),
		"fixture raster should write")
}

func TestRunRemapsCells(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "classes.tif")
	dst := filepath.Join(dir, "out", "classes.tif")

	writeClasses(t, src, []float64{1, 2, 3, 1}, nil)

	opts := mapvalues.Options{Values: map[float64]float64{1: 10, 2: 20}}
	require.NoError(t, mapvalues.Run(context.Background(), src, dst, opts), "remap should succeed")

	result, err := raster.Read(dst)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 20, -9999, 10}, result.Grid.Data,
		"mapped cells translate, unmapped cells become the error value")
	assert.Equal(t, raster.GeoTransform{0, 30, 0, 60, 0, -30}, result.Transform,
		"georeferencing carries through")
	assert.Equal(t, 32613, result.CRS.EPSG(), "the source system carries through")
	assert.Equal(t, raster.DTypeFloat32, result.DType, "output cell type")

	require.NotNil(t, result.NoData, "nodata marker should be stamped")
	assert.InDelta(t, -9999.0, *result.NoData, 1e-9, "conventional marker")
}

func TestRunCustomErrValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "classes.tif")
	dst := filepath.Join(dir, "out.tif")

	writeClasses(t, src, []float64{1, 2, 3, 1}, nil)

	errValue := -1.0
	opts := mapvalues.Options{Values: map[float64]float64{1: 10}, ErrValue: &errValue}
	require.NoError(t, mapvalues.Run(context.Background(), src, dst, opts), "remap should succeed")

	result, err := raster.Read(dst)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, -1, -1, 10}, result.Grid.Data, "misses take the custom error value")

	require.NotNil(t, result.NoData, "nodata marker should be stamped")
	assert.InDelta(t, -9999.0, *result.NoData, 1e-9, "the marker stays conventional either way")
}

func TestRunRemapsNodataCells(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "classes.tif")
	dst := filepath.Join(dir, "out.tif")

	nodata := -9999.0
	writeClasses(t, src, []float64{1, -9999, 1, 1}, &nodata)

	opts := mapvalues.Options{Values: map[float64]float64{1: 10, -9999: 0}}
	require.NoError(t, mapvalues.Run(context.Background(), src, dst, opts), "remap should succeed")

	result, err := raster.Read(dst)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 0, 10, 10}, result.Grid.Data,
		"marker cells run through the mapping like any other value")
}

func TestRunKeepsExistingOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "classes.tif")
	dst := filepath.Join(dir, "out.tif")

	writeClasses(t, src, []float64{1, 2, 3, 1}, nil)
	require.NoError(t, os.WriteFile(dst, []byte("occupied"), 0o644))

	opts := mapvalues.Options{Values: map[float64]float64{1: 10}}
	require.NoError(t, mapvalues.Run(context.Background(), src, dst, opts), "existing output is a no-op")

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "occupied", string(content), "existing output is not rewritten")
}

func TestRunRequiresValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := mapvalues.Run(context.Background(),
		filepath.Join(dir, "src.tif"), filepath.Join(dir, "dst.tif"), mapvalues.Options{})

	require.ErrorIs(t, err, mapvalues.ErrNoValues, "an empty mapping should be rejected")
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	folder := filepath.Join(dir, "mapped")
	first := filepath.Join(dir, "a.tif")
	second := filepath.Join(dir, "b.tif")

	writeClasses(t, first, []float64{1, 1, 2, 2}, nil)
	writeClasses(t, second, []float64{2, 2, 3, 3}, nil)

	opts := mapvalues.Options{Values: map[float64]float64{1: 10, 2: 20}, Workers: 2}

	paths, err := mapvalues.RunBatch(context.Background(),
		[]string{first, second}, folder, opts, io.Discard)

	require.NoError(t, err, "batch should succeed")
	require.Equal(t, []string{
		filepath.Join(folder, "a.tif"),
		filepath.Join(folder, "b.tif"),
	}, paths, "outputs take their source names")

	mapped, readErr := raster.Read(paths[1])
	require.NoError(t, readErr)
	assert.Equal(t, []float64{20, 20, -9999, -9999}, mapped.Grid.Data, "second raster remapped")
}

func TestRunBatchContinuesOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	folder := filepath.Join(dir, "mapped")
	good := filepath.Join(dir, "good.tif")
	missing := filepath.Join(dir, "missing.tif")

	writeClasses(t, good, []float64{1, 1, 1, 1}, nil)

	opts := mapvalues.Options{Values: map[float64]float64{1: 10}}

	paths, err := mapvalues.RunBatch(context.Background(),
		[]string{good, missing}, folder, opts, io.Discard)

	require.Error(t, err, "the missing source should be reported")
	assert.ErrorContains(t, err, "missing.tif", "failure names the source")
	require.Len(t, paths, 2, "every output path is still returned")

	mapped, readErr := raster.Read(paths[0])
	require.NoError(t, readErr, "the good source should still be processed")
	assert.Equal(t, []float64{10, 10, 10, 10}, mapped.Grid.Data, "good raster remapped")
}

func TestRunBatchHonorsCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "classes.tif")

	writeClasses(t, src, []float64{1, 1, 1, 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mapvalues.RunBatch(ctx, []string{src}, filepath.Join(dir, "mapped"),
		mapvalues.Options{Values: map[float64]float64{1: 10}}, io.Discard)

	require.ErrorIs(t, err, context.Canceled, "canceled context should surface")
}
