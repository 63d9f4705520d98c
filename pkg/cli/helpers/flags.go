// Package helpers contains small utilities shared by the command tree.
package helpers

import (
	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// TimingFlagName is the persistent flag that turns on per-activity timing
// output.
const TimingFlagName = "timings"

// MaybeTimer returns the timer when the timing flag is set on the command
// tree and nil otherwise, so notifications only carry timing blocks on
// request.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	enabled, err := cmd.Flags().GetBool(TimingFlagName)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}
