package vector

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/vector"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// ErrUnknownGeometry indicates a --geometry value outside the supported set.
var ErrUnknownGeometry = errors.New("unknown geometry kind")

// NewReprojectCmd creates the command that rewrites a shapefile in another
// coordinate system.
func NewReprojectCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reproject SRC DST",
		Short: "Reproject a shapefile",
		Long: "Rewrite a shapefile with every vertex converted to the target coordinate system.\n" +
			"The source system comes from the .prj sidecar and attributes are copied through.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultProjectFieldSelectors())

	var (
		target   string
		geometry string
	)

	cmd.Flags().StringVar(&target, "to", "", "target coordinate system, an EPSG reference or proj4 string")
	cmd.Flags().StringVar(&geometry, "geometry", "polygon", "layer geometry kind (polygon, point)")

	// A reprojection without a target is meaningless.
	_ = cmd.MarkFlagRequired("to")

	cmd.RunE = helpers.RunEWithTimer(runtimeContainer,
		func(cmd *cobra.Command, tmr timer.Timer, args []string) error {
			return handleReprojectRunE(cmd, cfgManager, tmr, args, target, geometry)
		})

	return cmd
}

func handleReprojectRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	tmr timer.Timer,
	args []string,
	target, geometry string,
) error {
	tmr.Start()

	config, err := cfgManager.LoadConfigSilent()
	if err != nil {
		return err
	}

	src, err := helpers.ResolveDataPath(config.Spec.DataRoot, args[0])
	if err != nil {
		return err
	}

	dst, err := helpers.ResolveDataPath(config.Spec.DataRoot, args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	notify.Titlef(out, "🧭", "Reproject '%s'...", filepath.Base(src))

	switch geometry {
	case "polygon":
		err = vector.ReprojectPolygons(cmd.Context(), src, dst, target)
	case "point":
		err = vector.ReprojectPoints(cmd.Context(), src, dst, target)
	default:
		return fmt.Errorf("%w: %q (available: polygon, point)", ErrUnknownGeometry, geometry)
	}

	if err != nil {
		return fmt.Errorf("failed to reproject shapefile: %w", err)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "'%s' reprojected to '%s'", filepath.Base(src), dst)

	return nil
}
