package raster

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/mapvalues"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// ErrInvalidValueMap indicates a mapping entry that does not parse as a
// numeric from=to pair.
var ErrInvalidValueMap = errors.New("invalid value mapping")

// mapFlags hold the value mapping sources and the batch output folder.
type mapFlags struct {
	mapping  string
	mapFile  string
	folder   string
	errValue float64
}

// NewMapCmd creates the command that remaps raster cell values.
func NewMapCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map SRC...",
		Short: "Remap raster cell values",
		Long: "Translate cell values through a mapping, writing one output per source raster.\n" +
			"Cells absent from the mapping, the nodata marker included, become the error value.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultProjectFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.WorkersFieldSelector())

	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	flags := &mapFlags{}
	cmd.Flags().StringVar(&flags.mapping, "map", "", "value mapping as from=to pairs, e.g. 1=5,2=7")
	cmd.Flags().StringVar(&flags.mapFile, "map-file", "", "YAML file of from: to value pairs")
	cmd.Flags().StringVar(&flags.folder, "out", "", "output folder, outputs keep their source names")
	cmd.Flags().Float64Var(&flags.errValue, "err-value", 0, "replacement for cells absent from the mapping")

	// Outputs land next to nothing sensible without a folder.
	_ = cmd.MarkFlagRequired("out")

	cmd.RunE = helpers.RunEWithTimer(runtimeContainer,
		func(cmd *cobra.Command, tmr timer.Timer, args []string) error {
			return handleMapRunE(cmd, cfgManager, flags, tmr, args)
		})

	return cmd
}

func handleMapRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	flags *mapFlags,
	tmr timer.Timer,
	args []string,
) error {
	tmr.Start()

	config, err := cfgManager.LoadConfigSilent()
	if err != nil {
		return err
	}

	values, err := loadValueMap(flags.mapping, flags.mapFile)
	if err != nil {
		return err
	}

	srcs, err := helpers.ResolveDataPaths(config.Spec.DataRoot, args)
	if err != nil {
		return err
	}

	folder, err := helpers.ResolveDataPath(config.Spec.DataRoot, flags.folder)
	if err != nil {
		return err
	}

	opts := mapvalues.Options{
		Values:  values,
		Workers: config.Spec.Workers,
	}

	if cmd.Flags().Changed("err-value") {
		value := flags.errValue
		opts.ErrValue = &value
	}

	out := cmd.OutOrStdout()

	paths, err := mapvalues.RunBatch(cmd.Context(), srcs, folder, opts, out)
	if err != nil {
		return fmt.Errorf("some rasters failed to remap: %w", err)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr),
		"%d rasters remapped into '%s'", len(paths), folder)

	return nil
}

// loadValueMap builds the value mapping from the file and the inline pairs.
// Inline pairs win over file entries for the values they name.
func loadValueMap(inline, path string) (map[float64]float64, error) {
	values := map[float64]float64{}

	if path != "" {
		fileValues, err := readValueMapFile(path)
		if err != nil {
			return nil, err
		}

		for from, to := range fileValues {
			values[from] = to
		}
	}

	if inline != "" {
		inlineValues, err := parseValueMap(inline)
		if err != nil {
			return nil, err
		}

		for from, to := range inlineValues {
			values[from] = to
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: set --map or --map-file", mapvalues.ErrNoValues)
	}

	return values, nil
}

// parseValueMap parses inline from=to pairs separated by commas.
func parseValueMap(spec string) (map[float64]float64, error) {
	values := map[float64]float64{}

	for _, pair := range strings.Split(spec, ",") {
		from, to, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("%w: %q is not a from=to pair", ErrInvalidValueMap, pair)
		}

		fromValue, err := strconv.ParseFloat(strings.TrimSpace(from), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidValueMap, from)
		}

		toValue, err := strconv.ParseFloat(strings.TrimSpace(to), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidValueMap, to)
		}

		values[fromValue] = toValue
	}

	return values, nil
}

// readValueMapFile loads a YAML mapping of from: to value pairs.
func readValueMapFile(path string) (map[float64]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read value map: %w", err)
	}

	raw := map[string]float64{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse value map %s: %w", path, err)
	}

	values := make(map[float64]float64, len(raw))

	for from, to := range raw {
		fromValue, err := strconv.ParseFloat(from, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q is not numeric", ErrInvalidValueMap, from)
		}

		values[fromValue] = to
	}

	return values, nil
}
