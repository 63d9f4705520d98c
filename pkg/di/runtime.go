// Package di wires shared services into commands through a samber/do
// injector. A Runtime owns an ordered module list and builds a fresh
// injector for every invocation, so commands never observe each other's
// state.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers services on an injector.
type Module func(Injector) error

// Runtime holds the base modules applied to every invocation.
type Runtime struct {
	modules []Module
}

// New creates a runtime from base modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs the handler against a fresh injector after applying the base
// modules and any extras, in order. Nil modules are skipped. The injector
// is shut down when the handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extras ...Module) error {
	injector := do.New()
	defer func() {
		_ = injector.Shutdown()
	}()

	modules := make([]Module, 0, len(r.modules)+len(extras))
	modules = append(modules, r.modules...)
	modules = append(modules, extras...)

	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(injector); err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts an injector-aware handler into a cobra RunE for
// commands that take no positional arguments.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
