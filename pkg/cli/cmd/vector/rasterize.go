package vector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/rasterize"
	"github.com/gdstools/gdskit/pkg/geo/vector"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// ErrInvalidExtent indicates an --extent value that is not four numbers.
var ErrInvalidExtent = errors.New("invalid extent")

// rasterizeFlags hold the target grid settings for burning features.
type rasterizeFlags struct {
	attribute  string
	epsg       int
	size       string
	extent     []float64
	allTouched bool
}

const extentArity = 4

// NewRasterizeCmd creates the command that burns shapefile features into a
// raster grid.
func NewRasterizeCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rasterize SRC DST",
		Short: "Burn shapefile features into a raster",
		Long: "Burn an attribute of every feature into a fresh raster grid.\n" +
			"The extent defaults to the shapefile's bounding box and the coordinate\n" +
			"system to its .prj sidecar.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultProjectFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.NoDataFieldSelector())
	fieldSelectors = append(fieldSelectors, configmanager.DTypeFieldSelector())
	fieldSelectors = append(fieldSelectors, configmanager.OverwriteFieldSelector())

	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	flags := &rasterizeFlags{}
	cmd.Flags().StringVar(&flags.attribute, "attribute", "", "field whose values are burned into cells")
	cmd.Flags().IntVar(&flags.epsg, "epsg", 0, "EPSG code of the target grid (defaults to the .prj sidecar)")
	cmd.Flags().StringVar(&flags.size, "size", "", "target grid size as WIDTHxHEIGHT")
	cmd.Flags().Float64SliceVar(&flags.extent, "extent", nil, "target extent as xmin,ymin,xmax,ymax")
	cmd.Flags().BoolVar(&flags.allTouched, "all-touched", false, "burn every cell the boundary passes through")

	_ = cmd.MarkFlagRequired("attribute")
	_ = cmd.MarkFlagRequired("size")

	cmd.RunE = helpers.RunEWithTimer(runtimeContainer,
		func(cmd *cobra.Command, tmr timer.Timer, args []string) error {
			return handleRasterizeRunE(cmd, cfgManager, flags, tmr, args)
		})

	return cmd
}

func handleRasterizeRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	flags *rasterizeFlags,
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

	width, height, err := parseSize(flags.size)
	if err != nil {
		return err
	}

	extent, err := resolveExtent(flags.extent, src)
	if err != nil {
		return err
	}

	targetSRS, err := resolveTargetSRS(flags.epsg, src)
	if err != nil {
		return err
	}

	xres := (extent[2] - extent[0]) / float64(width)
	yres := (extent[3] - extent[1]) / float64(height)
	transform := raster.GeoTransform{extent[0], xres, 0, extent[3], 0, -yres}

	nodata := config.Spec.NoData

	out := cmd.OutOrStdout()

	notify.Titlef(out, "🔥", "Rasterize '%s'...", filepath.Base(src))

	err = rasterize.Run(cmd.Context(), src, dst, rasterize.Options{
		Attribute:  flags.attribute,
		TargetSRS:  targetSRS,
		Transform:  transform,
		Width:      width,
		Height:     height,
		NoData:     &nodata,
		AllTouched: flags.allTouched,
		DType:      config.Spec.DType,
		Overwrite:  config.Spec.Overwrite,
	}, out)
	if err != nil {
		return fmt.Errorf("failed to rasterize shapefile: %w", err)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "'%s' burned to '%s'", filepath.Base(src), dst)

	return nil
}

// parseSize splits a WIDTHxHEIGHT specification.
func parseSize(spec string) (int, int, error) {
	widthPart, heightPart, found := strings.Cut(strings.ToLower(spec), "x")
	if !found {
		return 0, 0, fmt.Errorf("%w: --size needs WIDTHxHEIGHT", rasterize.ErrInvalidSize)
	}

	width, err := strconv.Atoi(strings.TrimSpace(widthPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", rasterize.ErrInvalidSize, spec)
	}

	height, err := strconv.Atoi(strings.TrimSpace(heightPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", rasterize.ErrInvalidSize, spec)
	}

	return width, height, nil
}

// resolveExtent returns the explicit extent, or the shapefile's bounding box
// when none was given.
func resolveExtent(extent []float64, src string) ([4]float64, error) {
	if len(extent) > 0 {
		if len(extent) != extentArity {
			return [4]float64{}, fmt.Errorf("%w: --extent needs xmin,ymin,xmax,ymax", ErrInvalidExtent)
		}

		var bounds [4]float64

		copy(bounds[:], extent)

		return bounds, nil
	}

	reader, err := shp.Open(src)
	if err != nil {
		return [4]float64{}, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer reader.Close()

	box := reader.BBox()

	return [4]float64{box.MinX, box.MinY, box.MaxX, box.MaxY}, nil
}

// resolveTargetSRS builds the target system reference from the EPSG flag or
// the .prj sidecar.
func resolveTargetSRS(epsg int, src string) (string, error) {
	if epsg != 0 {
		return fmt.Sprintf("EPSG:%d", epsg), nil
	}

	system, err := vector.ReadProjection(src)
	if err != nil {
		return "", err
	}

	return system.Proj4(), nil
}
