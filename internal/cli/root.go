package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dbgapdd/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "dbgapdd",
	Short: "dbGaP data dictionary to JSON converter",
	Long: `dbgapdd reads dbGaP XML data dictionaries, validates their accessions,
columns and encoded values, and writes one JSON record per variable.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - Malformed XML input
  21 - Required field missing
  22 - Invalid accession identifier
  23 - Duplicate variable identifier
  24 - Malformed or empty encoded value
  25 - Structural error in the dictionary`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are logged once, in the same
// format as every other message, and returned for exit code mapping.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	err := rootCmd.Execute()
	if err != nil {
		logging.NewConsoleLogger(int(logging.LevelError)).Error("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for dbgapdd")
	rootCmd.PersistentFlags().CountP("verbose", "v",
		"Increase verbosity (repeatable): -v info, -vv debug\n"+
			"Without -v the level comes from the config file or $DBGAPDD_VERBOSITY (default: warnings)")
	rootCmd.PersistentFlags().String("config", "",
		"Path to a dbgapdd.yaml configuration file\n"+
			"Precedence: --config > $DBGAPDD_CONFIG > ./dbgapdd.yaml > built-in defaults")
}
