package warp_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateOptions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "template.tif")
	fixture := newFixture(t, 3, 2, []float64{1, 2, 3, 4, 5, 6}, raster.GeoTransform{500000, 30, 0, 4400000, 0, -30}, 32613)
	writeFixture(t, path, fixture)

	opts, err := warp.TemplateOptions(path)
	require.NoError(t, err, "template geometry should lift")

	assert.Equal(t, [4]float64{500000, 4399940, 500090, 4400000}, opts.Bounds, "template extent")
	assert.InDelta(t, 30.0, opts.XRes, 1e-9, "template cell width")
	assert.InDelta(t, -30.0, opts.YRes, 1e-9, "the raw negative row step carries through")
	assert.Equal(t, raster.DTypeFloat64, opts.DType, "template cell type")

	system, err := crs.FromEPSG(32613)
	require.NoError(t, err)
	assert.Equal(t, system.Proj4(), opts.DstSRS, "the template system lifts as proj4")
}

func TestTemplateOptionsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := warp.TemplateOptions(filepath.Join(t.TempDir(), "absent.tif"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template", "error context")
}

func TestApplyTemplateWins(t *testing.T) {
	t.Parallel()

	nodata := -9999.0
	explicit := warp.Options{
		DstSRS:    "EPSG:4326",
		XRes:      99,
		Resample:  warp.ResampleBilinear,
		SrcNoData: &nodata,
		Overwrite: true,
	}
	template := warp.Options{
		DstSRS: "EPSG:32613",
		XRes:   30,
		YRes:   -30,
		Bounds: [4]float64{500000, 4399940, 500090, 4400000},
		DType:  raster.DTypeFloat64,
	}

	merged, err := warp.ApplyTemplate(explicit, template)
	require.NoError(t, err)

	assert.Equal(t, "EPSG:32613", merged.DstSRS, "the template system replaces the explicit one")
	assert.InDelta(t, 30.0, merged.XRes, 1e-9, "the template resolution replaces the explicit one")
	assert.InDelta(t, -30.0, merged.YRes, 1e-9, "template row step")
	assert.Equal(t, template.Bounds, merged.Bounds, "template extent")
	assert.Equal(t, raster.DTypeFloat64, merged.DType, "template cell type")

	assert.Equal(t, warp.ResampleBilinear, merged.Resample, "fields the template leaves empty survive")
	assert.True(t, merged.Overwrite, "fields the template leaves empty survive")
	require.NotNil(t, merged.SrcNoData)
	assert.InDelta(t, -9999.0, *merged.SrcNoData, 1e-9, "fields the template leaves empty survive")
}

func TestRunWithTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.tif")
	tmpl := filepath.Join(dir, "template.tif")
	dst := filepath.Join(dir, "dst.tif")

	data := []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	writeFixture(t, src, newFixture(t, 4, 4, data, raster.GeoTransform{0, 1, 0, 4, 0, -1}, 32613))
	writeFixture(t, tmpl, newFixture(t, 2, 2, []float64{0, 0, 0, 0}, raster.GeoTransform{1, 1, 0, 3, 0, -1}, 32613))

	template, err := warp.TemplateOptions(tmpl)
	require.NoError(t, err)

	opts, err := warp.ApplyTemplate(warp.Options{}, template)
	require.NoError(t, err)

	require.NoError(t, warp.Run(context.Background(), src, dst, opts, io.Discard),
		"a template-shaped warp should succeed")

	result, err := raster.Read(dst)
	require.NoError(t, err)

	assert.Equal(t, raster.GeoTransform{1, 1, 0, 3, 0, -1}, result.Transform, "the template grid shapes the output")
	assert.Equal(t, []float64{6, 7, 10, 11}, result.Grid.Data, "cells resample onto the template grid")
}
