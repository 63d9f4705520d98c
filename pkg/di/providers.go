package di

import (
	"github.com/samber/do/v2"

	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root
// command and tests. It registers default implementations for the shared
// services commands resolve.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}
