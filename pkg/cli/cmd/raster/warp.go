package raster

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/apis/project/v1alpha1"
	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// warpFlags hold the target grid options that have no config file
// counterpart and only count when explicitly set.
type warpFlags struct {
	srcSRS    string
	dstSRS    string
	xRes      float64
	yRes      float64
	bounds    []float64
	srcNoData float64
	dstNoData float64
	template  string
	tap       bool
}

const boundsArity = 4

// NewWarpCmd creates the command that reprojects and resamples a raster.
func NewWarpCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warp SRC DST",
		Short: "Reproject and resample a raster",
		Long: "Warp a raster onto a new grid: another coordinate system, resolution, or extent.\n" +
			"Without any target options the command lists what can be set and leaves the source alone.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultProjectFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.DTypeFieldSelector())
	fieldSelectors = append(fieldSelectors, configmanager.ResampleFieldSelector())
	fieldSelectors = append(fieldSelectors, configmanager.CompressFieldSelector())
	fieldSelectors = append(fieldSelectors, configmanager.OverwriteFieldSelector())

	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	flags := &warpFlags{}
	cmd.Flags().StringVar(&flags.srcSRS, "src-srs", "", "override the source coordinate system")
	cmd.Flags().StringVar(&flags.dstSRS, "dst-srs", "", "target coordinate system, an EPSG reference or proj4 string")
	cmd.Flags().Float64Var(&flags.xRes, "xres", 0, "target cell width in target units")
	cmd.Flags().Float64Var(&flags.yRes, "yres", 0, "target cell height in target units")
	cmd.Flags().Float64SliceVar(&flags.bounds, "bounds", nil, "target extent as xmin,ymin,xmax,ymax")
	cmd.Flags().Float64Var(&flags.srcNoData, "src-nodata", 0, "source nodata marker for masking")
	cmd.Flags().Float64Var(&flags.dstNoData, "dst-nodata", 0, "nodata marker written to the output")
	cmd.Flags().StringVar(&flags.template, "template", "", "raster whose grid the output copies")
	cmd.Flags().BoolVar(&flags.tap, "tap", false, "snap the extent outward onto the resolution grid")

	cmd.RunE = helpers.RunEWithTimer(runtimeContainer,
		func(cmd *cobra.Command, tmr timer.Timer, args []string) error {
			return handleWarpRunE(cmd, cfgManager, flags, tmr, args)
		})

	return cmd
}

func handleWarpRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	flags *warpFlags,
	tmr timer.Timer,
	args []string,
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

	opts, err := buildWarpOptions(cmd, config, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	notify.Titlef(out, "🌍", "Warp '%s'...", filepath.Base(src))

	runErr := warp.Run(cmd.Context(), src, dst, opts, out)

	switch {
	case errors.Is(runErr, warp.ErrNoOptions):
		fmt.Fprintln(out, "No warp options provided.")

		listing, describeErr := warp.Describe("warp")
		if describeErr != nil {
			return describeErr
		}

		fmt.Fprint(out, listing)

		return nil
	case errors.Is(runErr, raster.ErrDestinationExists):
		return fmt.Errorf("%w (use --overwrite to replace it)", runErr)
	case runErr != nil:
		return fmt.Errorf("failed to warp raster: %w", runErr)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "'%s' warped to '%s'", filepath.Base(src), dst)

	return nil
}

// buildWarpOptions folds config values, explicit flags, and the optional
// template raster into warp options. Nodata markers only count when their
// flags were set, so leaving them off keeps the source markers.
func buildWarpOptions(
	cmd *cobra.Command,
	config *v1alpha1.Project,
	flags *warpFlags,
) (warp.Options, error) {
	opts := warp.Options{
		SrcSRS:              flags.srcSRS,
		DstSRS:              flags.dstSRS,
		XRes:                flags.xRes,
		YRes:                flags.yRes,
		DType:               config.Spec.DType,
		Resample:            config.Spec.Resample,
		Compress:            config.Spec.Compress,
		TargetAlignedPixels: flags.tap,
		Overwrite:           config.Spec.Overwrite,
	}

	if len(flags.bounds) > 0 {
		if len(flags.bounds) != boundsArity {
			return warp.Options{}, fmt.Errorf("%w: --bounds needs xmin,ymin,xmax,ymax", warp.ErrInvalidBounds)
		}

		copy(opts.Bounds[:], flags.bounds)
	}

	if cmd.Flags().Changed("src-nodata") {
		value := flags.srcNoData
		opts.SrcNoData = &value
	}

	if cmd.Flags().Changed("dst-nodata") {
		value := flags.dstNoData
		opts.DstNoData = &value
	}

	if flags.template == "" {
		return opts, nil
	}

	templatePath, err := helpers.ResolveDataPath(config.Spec.DataRoot, flags.template)
	if err != nil {
		return warp.Options{}, err
	}

	template, err := warp.TemplateOptions(templatePath)
	if err != nil {
		return warp.Options{}, err
	}

	return warp.ApplyTemplate(opts, template)
}
