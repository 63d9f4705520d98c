package raster

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
)

// NewInfoCmd creates the command that describes a raster dataset.
func NewInfoCmd(_ *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "info PATH",
		Short:        "Describe a raster dataset",
		Long:         "Print the grid shape, coordinate system, extent, and storage details of a raster.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultProjectFieldSelectors())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return handleInfoRunE(cmd, cfgManager, args)
	}

	return cmd
}

func handleInfoRunE(cmd *cobra.Command, cfgManager *configmanager.ConfigManager, args []string) error {
	config, err := cfgManager.LoadConfigSilent()
	if err != nil {
		return err
	}

	path, err := helpers.ResolveDataPath(config.Spec.DataRoot, args[0])
	if err != nil {
		return err
	}

	dataset, err := raster.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read raster: %w", err)
	}

	printInfo(cmd.OutOrStdout(), dataset)

	return nil
}

// printInfo renders the dataset summary in the classic gdalinfo layout.
func printInfo(out io.Writer, dataset *raster.Dataset) {
	fmt.Fprintln(out, "Driver: GTiff/GeoTIFF")
	fmt.Fprintf(out, "Size: %d x %d\n", dataset.Grid.Width, dataset.Grid.Height)
	fmt.Fprintf(out, "Cell type: %s\n", dataset.DType)
	fmt.Fprintf(out, "Coordinate system: %s\n", describeCRS(dataset.CRS))

	if dataset.Transform != (raster.GeoTransform{}) {
		originX, originY := dataset.Transform.PixelToGeo(0, 0)
		xmin, ymin, xmax, ymax := dataset.Transform.Bounds(dataset.Grid.Width, dataset.Grid.Height)

		fmt.Fprintf(out, "Origin: (%.6f, %.6f)\n", originX, originY)
		fmt.Fprintf(out, "Pixel size: (%.6f, %.6f)\n", dataset.Transform.XRes(), dataset.Transform.YRes())
		fmt.Fprintf(out, "Extent: (%.6f, %.6f) - (%.6f, %.6f)\n", xmin, ymin, xmax, ymax)
	} else {
		fmt.Fprintln(out, "Georeference: none")
	}

	if dataset.NoData != nil {
		fmt.Fprintf(out, "NoData: %g\n", *dataset.NoData)
	} else {
		fmt.Fprintln(out, "NoData: none")
	}

	fmt.Fprintf(out, "Compression: %s\n", dataset.Compress)

	if minimum, ok := dataset.Grid.Min(); ok {
		maximum, _ := dataset.Grid.Max()
		mean, _ := dataset.Grid.Mean()

		fmt.Fprintf(out, "Stats: min=%g max=%g mean=%g\n", minimum, maximum, mean)
	}

	if len(dataset.Metadata) > 0 {
		fmt.Fprintln(out, "Metadata:")

		for _, key := range slices.Sorted(maps.Keys(dataset.Metadata)) {
			fmt.Fprintf(out, "  %s=%s\n", key, dataset.Metadata[key])
		}
	}
}

// describeCRS renders a coordinate system reference for display.
func describeCRS(system crs.CRS) string {
	if !system.Defined() {
		return "undefined"
	}

	if system.EPSG() != 0 {
		return fmt.Sprintf("EPSG:%d (%s)", system.EPSG(), system.Name())
	}

	return system.Name()
}
