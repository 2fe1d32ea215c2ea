package reformat

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Indent is the indentation of encoded output.
const Indent = "    "

// Encode writes records to w as an indented JSON array followed by a newline.
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndentWithOption(records, "", Indent, json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
