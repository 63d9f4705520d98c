package raster

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/tile"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// NewTileCmd creates the command that cuts a raster into tiles.
func NewTileCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tile SRC",
		Short: "Cut a raster into tiles",
		Long: "Split a raster into an approximately square grid of tiles, written in parallel.\n" +
			"Tiles that already exist are kept, so interrupted runs resume where they stopped.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultProjectFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.WorkersFieldSelector())

	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	var (
		tiles  int
		folder string
	)

	cmd.Flags().IntVar(&tiles, "tiles", tile.DefaultTiles, "tile count, the grid uses its integer square root per axis")
	cmd.Flags().StringVar(&folder, "out", "", "output folder (defaults to <source>_tiles beside the source)")

	cmd.RunE = helpers.RunEWithTimer(runtimeContainer,
		func(cmd *cobra.Command, tmr timer.Timer, args []string) error {
			return handleTileRunE(cmd, cfgManager, tmr, args[0], tiles, folder)
		})

	return cmd
}

func handleTileRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	tmr timer.Timer,
	srcArg string,
	tiles int,
	folder string,
) error {
	tmr.Start()

	config, err := cfgManager.LoadConfigSilent()
	if err != nil {
		return err
	}

	src, err := helpers.ResolveDataPath(config.Spec.DataRoot, srcArg)
	if err != nil {
		return err
	}

	if folder != "" {
		folder, err = helpers.ResolveDataPath(config.Spec.DataRoot, folder)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	paths, err := tile.Run(cmd.Context(), src, tile.Options{
		Folder:  folder,
		Tiles:   tiles,
		Workers: config.Spec.Workers,
	}, out)
	if err != nil {
		return fmt.Errorf("failed to tile raster: %w", err)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr),
		"%d tiles in '%s'", len(paths), filepath.Dir(paths[0]))

	return nil
}
