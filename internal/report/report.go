package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vvka-141/dbgapdd/internal/checksum"
	"github.com/vvka-141/dbgapdd/internal/dictionary"
)

// Suffix is appended to an output path to name its report.
const Suffix = ".report.json"

// Checksums of the source document.
type Checksums struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// Report summarizes one converted or validated data dictionary.
type Report struct {
	Source       string    `json:"source"`
	Study        string    `json:"study"`
	Dataset      string    `json:"dataset"`
	DatasetName  *string   `json:"dataset_name"`
	Identity     uuid.UUID `json:"identity"`
	Checksum     Checksums `json:"checksum"`
	Variables    int       `json:"variables"`
	ValueColumns int       `json:"value_columns"`
	Output       string    `json:"output,omitempty"`
	Warnings     []string  `json:"warnings"`
}

// Build creates the report for dd read from content.
func Build(dd *dictionary.DataDictionary, content []byte, warnings []string, calc checksum.Calculator) *Report {
	if warnings == nil {
		warnings = []string{}
	}
	return &Report{
		Source:      dd.Source,
		Study:       dd.Dataset.StudyID.String(),
		Dataset:     dd.Dataset.ID.String(),
		DatasetName: dd.Dataset.Name,
		Identity:    DatasetIdentity(dd.Dataset),
		Checksum: Checksums{
			Raw:        calc.CalculateRaw(content),
			Normalized: calc.CalculateNormalized(content),
		},
		Variables:    dd.Len(),
		ValueColumns: dd.ValueColumnCount(),
		Warnings:     warnings,
	}
}

// Write writes r as indented JSON.
func (r *Report) Write(w io.Writer) error {
	data, err := json.MarshalIndentWithOption(r, "", "    ", json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Path returns the report path for an output file.
func Path(output string) string {
	return output + Suffix
}
