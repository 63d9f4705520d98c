package helpers

import (
	"github.com/spf13/cobra"

	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// TimedHandler is a command handler that receives a resolved timer alongside
// the cobra arguments.
type TimedHandler func(cmd *cobra.Command, tmr timer.Timer, args []string) error

// RunEWithTimer adapts a timed handler into a cobra RunE. Each invocation
// runs inside a fresh injector so commands never share timer state.
func RunEWithTimer(runtimeContainer *runtime.Runtime, handler TimedHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(injector runtime.Injector) error {
			tmr, err := runtime.ResolveTimer(injector)
			if err != nil {
				return err
			}

			return handler(cmd, tmr, args)
		})
	}
}
