package errorhandler_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdstools/gdskit/pkg/ui/errorhandler"
)

var errBoom = errors.New("boom")

func failingCommand(silenceErrors bool) *cobra.Command {
	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(*cobra.Command, []string) error {
			return errBoom
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = silenceErrors
	cmd.SetArgs([]string{})

	return cmd
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:  "probe",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.SetArgs([]string{})

	err := errorhandler.NewExecutor().Execute(cmd)

	require.NoError(t, err, "successful commands should pass through")
}

func TestExecute_StripsCobraPrefix(t *testing.T) {
	t.Parallel()

	cmd := failingCommand(false)

	err := errorhandler.NewExecutor().Execute(cmd)

	require.Error(t, err, "failure should surface")
	assert.Equal(t, "boom", err.Error(), "cobra's Error: prefix should be stripped")
}

func TestExecute_SilentFailureKeepsCause(t *testing.T) {
	t.Parallel()

	cmd := failingCommand(true)

	err := errorhandler.NewExecutor().Execute(cmd)

	require.Error(t, err, "failure should surface")
	assert.Equal(t, "boom", err.Error(), "with empty stderr the cause message should be used")
}

func TestExecute_PreservesErrorChain(t *testing.T) {
	t.Parallel()

	cmd := failingCommand(false)

	err := errorhandler.NewExecutor().Execute(cmd)

	require.Error(t, err, "failure should surface")
	assert.ErrorIs(t, err, errBoom, "the original error should stay unwrappable")

	var cmdErr *errorhandler.CommandError

	assert.ErrorAs(t, err, &cmdErr, "failures should be CommandErrors")
}

func TestExecute_WrapsLongSingleLineOutput(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("tokens ", 40))

	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), long)

			return errBoom
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{})

	err := errorhandler.NewExecutor().Execute(cmd)

	require.Error(t, err, "failure should surface")
	assert.Contains(t, err.Error(), "\n", "long single-line output should be wrapped")
	assert.Contains(t, err.Error(), "tokens", "wrapped output should keep the words")
}

func TestExecute_KeepsMultiLineLayout(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), "first line\nsecond line")

			return errBoom
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{})

	err := errorhandler.NewExecutor().Execute(cmd)

	require.Error(t, err, "failure should surface")
	assert.Contains(t, err.Error(), "first line\nsecond line", "multi-line output should keep its layout")
}
