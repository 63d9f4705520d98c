// Package vector provides the vector dataset commands.
package vector

import (
	"github.com/spf13/cobra"

	runtime "github.com/gdstools/gdskit/pkg/di"
)

// NewVectorCmd creates the parent command grouping the vector operations.
func NewVectorCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vector",
		Short: "Work with vector datasets",
		Long:  "Reproject shapefiles, burn features into rasters, and convert tables to GeoJSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(NewReprojectCmd(runtimeContainer))
	cmd.AddCommand(NewRasterizeCmd(runtimeContainer))
	cmd.AddCommand(NewToGeoCmd(runtimeContainer))

	return cmd
}
