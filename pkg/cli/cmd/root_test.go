package cmd_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdstools/gdskit/pkg/cli/cmd"
	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/ui/errorhandler"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("1.2.0", "abc1234", "2026-08-01")

	assert.Equal(t, "gdskit", rootCmd.Use)
	assert.Equal(t, "1.2.0 (Built on 2026-08-01 from Git SHA abc1234)", rootCmd.Version)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("timings"))

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "raster")
	assert.Contains(t, names, "vector")
	assert.Contains(t, names, "options")
}

func TestRootCmdPrintsLogoAndHelp(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var buffer bytes.Buffer

	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buffer.String(), `\____||____/`, "the banner renders")
	assert.Contains(t, buffer.String(), "Usage:")
	assert.Contains(t, buffer.String(), "raster")
}

func TestRootCmdVersionFlag(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("1.2.0", "abc1234", "2026-08-01")

	var buffer bytes.Buffer

	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{"--version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buffer.String(), "gdskit version 1.2.0")
}

func TestExecuteReturnsNilOnSuccess(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var buffer bytes.Buffer

	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{"options"})

	require.NoError(t, cmd.Execute(rootCmd))
	assert.Contains(t, buffer.String(), "Available modules:")
}

func TestExecuteWrapsFailures(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var buffer bytes.Buffer

	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{"bogus"})

	err := cmd.Execute(rootCmd)

	require.Error(t, err)
	assert.ErrorContains(t, err, "command execution failed")
	assert.ErrorContains(t, err, "unknown command")

	var cmdErr *errorhandler.CommandError

	assert.ErrorAs(t, err, &cmdErr, "the normalized error is preserved for unwrapping")
}

// The timings flag lives on the root command but has to reach handlers at
// the bottom of the tree.
func TestRootCmdTimingsFlagAddsTimingBlock(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	src := filepath.Join(dir, "dem.tif")
	dst := filepath.Join(dir, "out.tif")

	grid, err := raster.NewGridFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	system, err := crs.FromEPSG(32613)
	require.NoError(t, err)

	dataset := &raster.Dataset{
		Grid:      grid,
		Transform: raster.GeoTransform{0, 1, 0, 2, 0, -1},
		CRS:       system,
	}
	require.NoError(t, raster.Write(src, dataset, raster.WriteOptions{DType: raster.DTypeFloat64}))

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var buffer bytes.Buffer

	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{
		"raster", "warp", src, dst,
		"--xres", "1", "--yres", "1",
		"--timings",
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buffer.String(), "warped to")
	assert.Contains(t, buffer.String(), "⏲ current:", "the timing block follows the success line")
	assert.FileExists(t, dst)
}
