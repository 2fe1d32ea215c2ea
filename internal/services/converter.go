package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/dbgapdd/internal/check"
	"github.com/vvka-141/dbgapdd/internal/checksum"
	"github.com/vvka-141/dbgapdd/internal/config"
	"github.com/vvka-141/dbgapdd/internal/dictionary"
	"github.com/vvka-141/dbgapdd/internal/files/filesystem"
	"github.com/vvka-141/dbgapdd/internal/logging"
	"github.com/vvka-141/dbgapdd/internal/reformat"
	"github.com/vvka-141/dbgapdd/internal/report"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// StdoutPath writes output to standard output.
const StdoutPath = "-"

// Result is the outcome of validating or converting one source.
type Result struct {
	Source     string
	Output     string // empty for Validate, "-" for stdout
	Dictionary *dictionary.DataDictionary
	Check      check.Result
	Records    []reformat.Record
	Report     *report.Report
}

// Converter runs the read -> check -> reformat -> write workflow.
// A Converter holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg    *config.ProjectConfig
	logger dbgap.Logger
	fs     filesystem.WritableFileSystem
	calc   checksum.Calculator
	stdout io.Writer
}

// NewConverter creates a Converter. Panics on nil dependencies, which are
// programmer errors.
func NewConverter(cfg *config.ProjectConfig, logger dbgap.Logger, fs filesystem.WritableFileSystem, stdout io.Writer) *Converter {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if stdout == nil {
		panic("stdout cannot be nil")
	}
	return &Converter{
		cfg:    cfg,
		logger: logger,
		fs:     fs,
		calc:   checksum.New(),
		stdout: stdout,
	}
}

// Validate reads and checks source without writing anything.
func (c *Converter) Validate(ctx context.Context, source string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Verbose("Reading data dictionary %s", source)
	content, err := filesystem.ReadSource(c.fs, source)
	if err != nil {
		return nil, err
	}

	collector := logging.NewCollector(c.logger)
	reader := dictionary.NewReaderWithFileSystem(collector, c.fs)
	dd, err := reader.Read(bytes.NewReader(content), source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	logging.Dump(c.logger, "Parsed data dictionary", dd)

	checked, err := check.Dictionary(dd.Table(), c.cfg.RequiredFields, c.cfg.OptionalFields, collector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return &Result{
		Source:     source,
		Dictionary: dd,
		Check:      checked,
		Report:     report.Build(dd, content, collector.Warnings(), c.calc),
	}, nil
}

// Convert validates source, reformats it and writes the JSON array to
// output ("" or "-" for stdout). With reporting enabled the report is
// written next to the output file.
func (c *Converter) Convert(ctx context.Context, source, output string) (*Result, error) {
	res, err := c.Validate(ctx, source)
	if err != nil {
		return nil, err
	}

	records, err := reformat.Records(res.Dictionary.Table(), c.cfg.OutputFields, c.cfg.MissingValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	res.Records = records

	if output == "" {
		output = StdoutPath
	}
	res.Output = output
	res.Report.Output = output

	if err := c.writeRecords(output, records); err != nil {
		return nil, err
	}

	if c.cfg.Report {
		if err := c.writeReport(res.Report, output); err != nil {
			return nil, err
		}
	}

	c.logger.Info("✓ Converted %s (%d variables) to %s", source, len(records), displayPath(output))
	return res, nil
}

// ConvertAll converts every source into outputDir concurrently, one
// goroutine per source and at most runtime.NumCPU at a time. The first
// failure cancels the conversions that have not started; results keep the
// order of sources.
func (c *Converter) ConvertAll(ctx context.Context, sources []string, outputDir string) ([]*Result, error) {
	if err := checkDistinctOutputs(sources); err != nil {
		return nil, err
	}

	results := make([]*Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			res, err := c.Convert(gctx, source, OutputPath(outputDir, source))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Converter) writeRecords(output string, records []reformat.Record) error {
	if output == StdoutPath {
		return reformat.Encode(c.stdout, records)
	}

	w, err := c.fs.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := reformat.Encode(w, records); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", output, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", output, err)
	}
	return nil
}

func (c *Converter) writeReport(r *report.Report, output string) error {
	if output == StdoutPath {
		c.logger.Warn("Report skipped for %s: output is written to stdout", r.Source)
		return nil
	}

	path := report.Path(output)
	w, err := c.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Write(w); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	c.logger.Verbose("Wrote report %s", path)
	return nil
}

// OutputPath names the JSON file for source inside dir:
// "in/phs1.v1.pht1.v1.x.data_dict.xml.gz" becomes "dir/phs1.v1.pht1.v1.x.data_dict.json".
func OutputPath(dir, source string) string {
	base := filepath.Base(source)
	if filesystem.IsGzip(base) {
		base = base[:len(base)-len(".gz")]
	}
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".xml") {
		base = base[:len(base)-len(ext)]
	}
	return filepath.Join(dir, base+".json")
}

func checkDistinctOutputs(sources []string) error {
	seen := make(map[string]string, len(sources))
	for _, source := range sources {
		out := OutputPath("", source)
		if first, dup := seen[out]; dup {
			return fmt.Errorf("%s and %s would both be written to %s", first, source, out)
		}
		seen[out] = source
	}
	return nil
}

func displayPath(output string) string {
	if output == StdoutPath {
		return "stdout"
	}
	return output
}
