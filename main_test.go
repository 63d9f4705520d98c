package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafelyPassesExitCode(t *testing.T) {
	t.Parallel()

	var errWriter bytes.Buffer

	got := runSafely([]string{"raster"}, func(args []string) int {
		assert.Equal(t, []string{"raster"}, args)

		return 3
	}, &errWriter)

	assert.Equal(t, 3, got)
	assert.Empty(t, errWriter.String())
}

func TestRunSafelyRecoversPanic(t *testing.T) {
	t.Parallel()

	var errWriter bytes.Buffer

	got := runSafely(nil, func([]string) int {
		panic("boom")
	}, &errWriter)

	assert.Equal(t, 1, got)
	assert.Contains(t, errWriter.String(), "panic recovered: boom")
	assert.Contains(t, errWriter.String(), "goroutine", "the stack trace is included")
}
