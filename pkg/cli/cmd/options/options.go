// Package options provides the command that documents module options.
package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/warp"
	"github.com/gdstools/gdskit/pkg/notify"
)

// ErrInvalidCheck indicates a --check value that is not a name=value pair.
var ErrInvalidCheck = errors.New("invalid check")

// NewOptionsCmd creates the command that lists and validates module options.
func NewOptionsCmd(_ *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options [MODULE]",
		Short: "List the options a module accepts",
		Long: "Show the documented options of a processing module, or validate\n" +
			"name=value pairs against them before committing to a long run.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	var checks []string

	cmd.Flags().StringArrayVar(&checks, "check", nil, "validate a name=value pair against the module's options")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return handleOptionsRunE(cmd, args, checks)
	}

	return cmd
}

func handleOptionsRunE(cmd *cobra.Command, args []string, checks []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, "Available modules:")

		for _, module := range warp.Modules() {
			fmt.Fprintf(out, "  %s\n", module)
		}

		return nil
	}

	module := args[0]

	listing, err := warp.Describe(module)
	if err != nil {
		return err
	}

	if len(checks) == 0 {
		fmt.Fprintf(out, "Options for %s:\n", warp.NormalizeModule(module))
		fmt.Fprint(out, listing)

		return nil
	}

	pairs, err := parseChecks(checks)
	if err != nil {
		return err
	}

	if validateErr := warp.Validate(module, pairs); validateErr != nil {
		fmt.Fprintf(out, "Options for %s:\n", warp.NormalizeModule(module))
		fmt.Fprint(out, listing)

		return validateErr
	}

	notify.Successf(out, "%d option(s) valid for %s", len(pairs), warp.NormalizeModule(module))

	return nil
}

// parseChecks splits --check values into name=value pairs.
func parseChecks(checks []string) (map[string]string, error) {
	pairs := make(map[string]string, len(checks))

	for _, check := range checks {
		name, value, found := strings.Cut(check, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q is not a name=value pair", ErrInvalidCheck, check)
		}

		pairs[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	return pairs, nil
}
