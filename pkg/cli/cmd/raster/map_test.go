package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/mapvalues"
	"github.com/gdstools/gdskit/pkg/geo/raster"
)

func TestParseValueMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		want    map[float64]float64
		wantErr bool
	}{
		{name: "single pair", spec: "1=5", want: map[float64]float64{1: 5}},
		{name: "multiple pairs", spec: "1=5,2=7", want: map[float64]float64{1: 5, 2: 7}},
		{name: "spaces tolerated", spec: " 1 = 5 , 2 = 7 ", want: map[float64]float64{1: 5, 2: 7}},
		{name: "negative values", spec: "-9999=0", want: map[float64]float64{-9999: 0}},
		{name: "missing equals", spec: "1:5", wantErr: true},
		{name: "textual from", spec: "water=1", wantErr: true},
		{name: "textual to", spec: "1=water", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseValueMap(testCase.spec)

			if testCase.wantErr {
				require.ErrorIs(t, err, ErrInvalidValueMap)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestLoadValueMapMergesInlineOverFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "legend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\"1\": 5\n\"2\": 7\n"), 0o600))

	values, err := loadValueMap("2=9,3=1", path)

	require.NoError(t, err)
	assert.Equal(t, map[float64]float64{1: 5, 2: 9, 3: 1}, values,
		"inline pairs win over file entries")
}

func TestLoadValueMapRequiresValues(t *testing.T) {
	t.Parallel()

	_, err := loadValueMap("", "")

	require.ErrorIs(t, err, mapvalues.ErrNoValues)
	assert.ErrorContains(t, err, "--map", "the message points at the flags")
}

func TestLoadValueMapRejectsTextualKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "legend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("water: 1\n"), 0o600))

	_, err := loadValueMap("", path)

	require.ErrorIs(t, err, ErrInvalidValueMap)
}

func TestMapCmdRemapsRasters(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	src := filepath.Join(dir, "landcover.tif")
	folder := filepath.Join(dir, "out")
	writeTestRaster(t, src, 2, 2, []float64{1, 2, 3, 4}, raster.GeoTransform{0, 1, 0, 2, 0, -1}, 32613)

	output, err := runCommand(t, NewMapCmd(runtime.NewRuntime()),
		[]string{src, "--map", "1=10,2=20", "--err-value", "0", "--out", folder})

	require.NoError(t, err)
	assert.Contains(t, output, "1 rasters remapped")

	result, err := raster.Read(filepath.Join(folder, "landcover.tif"))
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 20, 0, 0}, result.Grid.Data,
		"mapped cells translate, unmapped cells take the error value")
}

func TestMapCmdRequiresOutFlag(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, NewMapCmd(runtime.NewRuntime()), []string{"src.tif", "--map", "1=2"})

	require.ErrorContains(t, err, "out", "the output folder is mandatory")
}
