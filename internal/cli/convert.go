package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dbgapdd/internal/files/filesystem"
	"github.com/vvka-141/dbgapdd/internal/services"
)

var convertCmd = &cobra.Command{
	Use:   "convert <dd.xml>...",
	Short: "Convert data dictionaries to JSON",
	Long: `Convert reads each data dictionary, validates it and writes a JSON array
with one record per variable.

A single input is written to --output, or to stdout when --output is omitted
or "-". Several inputs, or a directory of *.xml / *.xml.gz files, require
--output-dir; each input becomes <name>.json there. Use "-" to read stdin.

Examples:
  dbgapdd convert phs000001.v1.pht000001.v1.Age.data_dict.xml -o age.json
  dbgapdd convert ./dictionaries --output-dir ./json --report
  dbgapdd convert --dd-xml age.data_dict.xml --output age.json`,
	Args: RequireDictionaryPaths,
	RunE: runConvert,
}

type convertFlagValues struct {
	ddXML     string
	output    string
	outputDir string
	report    bool
}

var convertFlags convertFlagValues

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFlags.ddXML, "dd-xml", "",
		"Path to a dbGaP data dictionary XML file (same as a positional argument)")
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "",
		"Path to the JSON output for a single input (default: stdout)")
	convertCmd.Flags().StringVar(&convertFlags.outputDir, "output-dir", "",
		"Directory for the JSON outputs, named after each input\n"+
			"Required when converting more than one data dictionary")
	convertCmd.Flags().BoolVar(&convertFlags.report, "report", false,
		"Also write <output>.report.json with checksums, identity and warnings\n"+
			"Overrides 'report' in dbgapdd.yaml")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if convertFlags.output != "" && convertFlags.outputDir != "" {
		return fmt.Errorf("invalid argument: --output and --output-dir are mutually exclusive")
	}

	fs := filesystem.NewOSFileSystem()
	sources, err := collectSources(fs, args, convertFlags.ddXML)
	if err != nil {
		return err
	}

	if len(sources) > 1 && convertFlags.outputDir == "" {
		return fmt.Errorf("invalid argument: %d data dictionaries given, --output-dir is required", len(sources))
	}
	if convertFlags.outputDir != "" {
		for _, s := range sources {
			if s == filesystem.StdinPath {
				return fmt.Errorf("invalid argument: stdin input cannot be named in --output-dir, use --output")
			}
		}
	}

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	if convertFlags.report {
		cfg.Report = true
	}

	logger := newLogger(cfg)
	converter := services.NewConverter(cfg, logger, fs, cmd.OutOrStdout())

	ctx, cancel := interruptContext(logger)
	defer cancel()

	if convertFlags.outputDir == "" {
		_, err := converter.Convert(ctx, sources[0], convertFlags.output)
		return err
	}

	results, err := converter.ConvertAll(ctx, sources, convertFlags.outputDir)
	if err != nil {
		return err
	}
	logger.Info("✓ Converted %d data dictionaries into %s", len(results), convertFlags.outputDir)
	return nil
}

// collectSources merges the legacy --dd-xml path with the arguments and
// expands directories into the dictionaries they contain.
func collectSources(fs filesystem.FileSystemProvider, args []string, ddXML string) ([]string, error) {
	paths := args
	if ddXML != "" {
		paths = append([]string{ddXML}, args...)
	}

	var sources []string
	for _, p := range paths {
		if p == filesystem.StdinPath {
			if len(paths) > 1 {
				return nil, fmt.Errorf("invalid argument: stdin cannot be combined with other inputs")
			}
			sources = append(sources, p)
			continue
		}

		info, err := fs.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s does not exist! Please provide a valid file: %w", p, err)
		}
		if !info.IsDir() {
			sources = append(sources, p)
			continue
		}

		found, err := filesystem.FindDictionaries(fs, p)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no data dictionaries (*.xml, *.xml.gz) found in %s", p)
		}
		sources = append(sources, found...)
	}
	return sources, nil
}
