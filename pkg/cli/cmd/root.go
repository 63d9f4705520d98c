// Package cmd provides the root command for the GDSKit CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/cmd/options"
	"github.com/gdstools/gdskit/pkg/cli/cmd/raster"
	"github.com/gdstools/gdskit/pkg/cli/cmd/vector"
	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/ui/asciiart"
	"github.com/gdstools/gdskit/pkg/ui/errorhandler"
)

// NewRootCmd creates and returns the root command with version info and
// subcommands attached.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "gdskit",
		Short:        "A series of helpful utilities for GDS work",
		Long:         "GDSKit reads, reshapes, and writes geodata without a native GDAL install.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show per-activity timing output",
	)

	cmd.AddCommand(raster.NewRasterCmd(runtimeContainer))
	cmd.AddCommand(vector.NewVectorCmd(runtimeContainer))
	cmd.AddCommand(options.NewOptionsCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	asciiart.PrintLogo(cmd.OutOrStdout())

	// The err can safely be ignored, as printing help never fails at runtime.
	_ = cmd.Help()

	return nil
}
