// Package errorhandler converts command failures into single, readable
// error messages.
package errorhandler

import (
	"bytes"
	"os"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const fallbackWidth = 100

// CommandError carries the normalized failure message while preserving the
// original error for unwrapping.
type CommandError struct {
	message string
	cause   error
}

// Error returns the normalized message, appending the cause only when the
// message does not already contain it.
func (e *CommandError) Error() string {
	if e.message == "" && e.cause == nil {
		return "command failed"
	}

	if e.message == "" {
		return e.cause.Error()
	}

	if e.cause == nil || strings.Contains(e.message, e.cause.Error()) {
		return e.message
	}

	return e.message + ": " + e.cause.Error()
}

// Unwrap exposes the original error for errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.cause
}

// Executor runs a command tree and folds anything written to stderr into
// the returned error.
type Executor struct {
	width int
}

// NewExecutor creates an executor that wraps failure messages to the
// terminal width, or a fixed width when stdout is not a terminal.
func NewExecutor() *Executor {
	return &Executor{width: terminalWidth()}
}

// Execute runs the command, capturing stderr while it runs. On failure the
// captured output and the error are normalized into a CommandError.
func (e *Executor) Execute(cmd *cobra.Command) error {
	var stderr bytes.Buffer

	original := cmd.ErrOrStderr()
	cmd.SetErr(&stderr)

	execErr := cmd.Execute()

	cmd.SetErr(original)

	if execErr == nil {
		return nil
	}

	message := e.wrap(normalize(stderr.String()))

	return &CommandError{message: message, cause: execErr}
}

// normalize trims surrounding whitespace and strips cobra's "Error: "
// prefix from the first line.
func normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}

// wrap rewraps single-line messages to the configured width. Multi-line
// output keeps its own layout.
func (e *Executor) wrap(message string) string {
	if message == "" || strings.Contains(message, "\n") {
		return message
	}

	if len(message) <= e.width {
		return message
	}

	return wordwrap.WrapString(message, uint(e.width)) //nolint:gosec // Width is positive.
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}

	return width
}
