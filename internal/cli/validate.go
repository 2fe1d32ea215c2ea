package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dbgapdd/internal/files/filesystem"
	"github.com/vvka-141/dbgapdd/internal/report"
	"github.com/vvka-141/dbgapdd/internal/services"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dd.xml>",
	Short: "Validate a data dictionary without converting it",
	Long: `Validate reads and checks a data dictionary and prints a summary.
Nothing is written to disk. The exit code tells which check failed.

Examples:
  dbgapdd validate phs000001.v1.pht000001.v1.Age.data_dict.xml
  dbgapdd validate age.data_dict.xml.gz --json`,
	Args: RequireDictionaryPath,
	RunE: runValidate,
}

type validateFlagValues struct {
	json bool
}

var validateFlags validateFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false,
		"Print the full report as JSON instead of a summary")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	converter := services.NewConverter(cfg, logger, filesystem.NewOSFileSystem(), cmd.OutOrStdout())

	ctx, cancel := interruptContext(logger)
	defer cancel()

	res, err := converter.Validate(ctx, args[0])
	if err != nil {
		return err
	}

	if validateFlags.json {
		return res.Report.Write(cmd.OutOrStdout())
	}
	printSummary(cmd.OutOrStdout(), res.Report)
	return nil
}

func printSummary(w io.Writer, r *report.Report) {
	name := "-"
	if r.DatasetName != nil {
		name = *r.DatasetName
	}
	fmt.Fprintf(w, "✓ %s is valid\n", r.Source)
	fmt.Fprintf(w, "  Study:         %s\n", r.Study)
	fmt.Fprintf(w, "  Dataset:       %s (%s)\n", r.Dataset, name)
	fmt.Fprintf(w, "  Variables:     %d\n", r.Variables)
	fmt.Fprintf(w, "  Value columns: %d\n", r.ValueColumns)
	fmt.Fprintf(w, "  Warnings:      %d\n", len(r.Warnings))
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "    - %s\n", warning)
	}
}
