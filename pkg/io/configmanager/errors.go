package configmanager

import (
	"errors"
	"fmt"
)

// ErrConfigInvalid is returned when the loaded project configuration fails
// validation. The individual problems are written to the manager's writer.
var ErrConfigInvalid = errors.New("invalid configuration")

func newValidationSummaryError(errorCount, warningCount int) error {
	return fmt.Errorf("%w: %d error(s), %d warning(s)", ErrConfigInvalid, errorCount, warningCount)
}
