package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireDictionaryPaths validates that at least one data dictionary is named,
// either as an argument or with the legacy --dd-xml flag.
func RequireDictionaryPaths(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return nil
	}
	if f := cmd.Flag("dd-xml"); f != nil && f.Value.String() != "" {
		return nil
	}
	return fmt.Errorf(`missing required argument: <dd.xml>

Usage: %s

Example:
  %s phs000001.v1.pht000001.v1.Age.data_dict.xml -o age.json`, cmd.UseLine(), cmd.CommandPath())
}

// RequireDictionaryPath validates that exactly one data dictionary argument is provided.
func RequireDictionaryPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <dd.xml>

Usage: %s

Example:
  %s phs000001.v1.pht000001.v1.Age.data_dict.xml`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
