package vector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/helpers"
	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/fsutil"
	"github.com/gdstools/gdskit/pkg/geo/vector"
	"github.com/gdstools/gdskit/pkg/io/configmanager"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// NewToGeoCmd creates the command that converts a coordinate table to
// GeoJSON.
func NewToGeoCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "togeo TABLE",
		Short: "Convert a coordinate table to GeoJSON",
		Long: "Build a GeoJSON point collection from a comma-delimited table.\n" +
			"Every column is carried as a feature property, numeric ones as numbers.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultProjectFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.OverwriteFieldSelector())

	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	var (
		lonColumn string
		latColumn string
		output    string
	)

	cmd.Flags().StringVar(&lonColumn, "lon", vector.DefaultLonColumn, "longitude column name")
	cmd.Flags().StringVar(&latColumn, "lat", vector.DefaultLatColumn, "latitude column name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to the table name with .geojson)")

	cmd.RunE = helpers.RunEWithTimer(runtimeContainer,
		func(cmd *cobra.Command, tmr timer.Timer, args []string) error {
			return handleToGeoRunE(cmd, cfgManager, tmr, args[0], lonColumn, latColumn, output)
		})

	return cmd
}

func handleToGeoRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	tmr timer.Timer,
	table, lonColumn, latColumn, output string,
) error {
	tmr.Start()

	config, err := cfgManager.LoadConfigSilent()
	if err != nil {
		return err
	}

	path, err := helpers.ResolveDataPath(config.Spec.DataRoot, table)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".geojson"
	} else {
		output, err = helpers.ResolveDataPath(config.Spec.DataRoot, output)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	if !config.Spec.Overwrite {
		if _, statErr := os.Stat(output); statErr == nil {
			notify.Activityf(out, "'%s' kept, use --overwrite to replace it", output)

			return nil
		}
	}

	collection, err := vector.ToGeo(path, vector.ToGeoOptions{
		LonColumn: lonColumn,
		LatColumn: latColumn,
	})
	if err != nil {
		return fmt.Errorf("failed to convert table: %w", err)
	}

	content, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}

	if _, err := fsutil.TryWriteFile(string(content), output, true); err != nil {
		return err
	}

	notify.Generatef(out, "'%s' generated with %d features", output, len(collection.Features))
	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "table converted")

	return nil
}
