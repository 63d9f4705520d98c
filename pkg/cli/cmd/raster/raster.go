// Package raster provides the raster dataset commands.
package raster

import (
	"github.com/spf13/cobra"

	runtime "github.com/gdstools/gdskit/pkg/di"
)

// NewRasterCmd creates the parent command grouping the raster operations.
func NewRasterCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raster",
		Short: "Work with raster datasets",
		Long:  "Inspect, reproject, tile, and remap GeoTIFF rasters.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(NewInfoCmd(runtimeContainer))
	cmd.AddCommand(NewWarpCmd(runtimeContainer))
	cmd.AddCommand(NewTileCmd(runtimeContainer))
	cmd.AddCommand(NewMapCmd(runtimeContainer))

	return cmd
}
