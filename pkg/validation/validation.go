// Package validation provides checks for user-facing inputs shared by the
// CLI and server entrypoints.
package validation

import (
	"fmt"

	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be %s or %s",
			format, constants.OutputFormatPretty, constants.OutputFormatJSON)
	}
}
