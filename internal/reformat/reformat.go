package reformat

import (
	"bytes"

	"github.com/vvka-141/dbgapdd/internal/check"
	"github.com/vvka-141/dbgapdd/internal/dictionary"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Record is one output object. Each value is a string, nil, or
// *EncodedValues for ENCODED_VALUES.
type Record struct {
	fields []string
	values map[string]interface{}
}

// Fields returns the field names in output order.
func (r Record) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Get returns the value of field.
func (r Record) Get(field string) (interface{}, bool) {
	v, ok := r.values[field]
	return v, ok
}

// String returns a string-valued field; ok is false for nil and non-string values.
func (r Record) String(field string) (string, bool) {
	s, ok := r.values[field].(string)
	return s, ok
}

// EncodedValues returns the unpacked ENCODED_VALUES, nil when absent or missing.
func (r Record) EncodedValues() *EncodedValues {
	ev, _ := r.values[dbgap.EncodedValuesField].(*EncodedValues)
	return ev
}

// MarshalJSON writes the record as a JSON object with fields in output order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, field, r.values[field]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records converts every row of t into a Record holding exactly outputFields.
//
// Encoded values are unpacked into ENCODED_VALUES. Null and empty values,
// including fields t does not have, become missing; a nil missing writes
// JSON null. Row order is preserved.
func Records(t *dictionary.Table, outputFields []string, missing *string) ([]Record, error) {
	if !t.HasColumn(dbgap.ValuesField) {
		return nil, check.MissingFieldError(dbgap.ValuesField)
	}

	var placeholder interface{}
	if missing != nil {
		placeholder = *missing
	}

	fields := uniqueFields(outputFields)
	records := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		rec := Record{fields: fields, values: make(map[string]interface{}, len(fields))}

		for _, field := range fields {
			if field == dbgap.EncodedValuesField {
				if ev := UnpackEncodedValues(row); ev != nil {
					rec.values[field] = ev
				} else {
					rec.values[field] = placeholder
				}
				continue
			}

			if cell, ok := row.Get(field); ok && cell != "" {
				rec.values[field] = cell
			} else {
				rec.values[field] = placeholder
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func uniqueFields(fields []string) []string {
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
