package reformat

import (
	"bytes"

	"github.com/goccy/go-json"
)

// EncodedValues maps codes to labels and remembers the order in which codes
// were first seen. Setting an existing code replaces its label in place.
type EncodedValues struct {
	codes  []string
	labels map[string]string
}

// NewEncodedValues returns an empty mapping.
func NewEncodedValues() *EncodedValues {
	return &EncodedValues{labels: make(map[string]string)}
}

// Set assigns label to code.
func (e *EncodedValues) Set(code, label string) {
	if _, ok := e.labels[code]; !ok {
		e.codes = append(e.codes, code)
	}
	e.labels[code] = label
}

// Get returns the label of code.
func (e *EncodedValues) Get(code string) (string, bool) {
	label, ok := e.labels[code]
	return label, ok
}

// Len returns the number of distinct codes.
func (e *EncodedValues) Len() int {
	return len(e.codes)
}

// Codes returns the codes in first-seen order.
func (e *EncodedValues) Codes() []string {
	return append([]string(nil), e.codes...)
}

// Map returns a copy as a plain map.
func (e *EncodedValues) Map() map[string]string {
	m := make(map[string]string, len(e.labels))
	for k, v := range e.labels {
		m[k] = v
	}
	return m
}

// MarshalJSON writes the mapping as a JSON object in first-seen order.
func (e *EncodedValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range e.codes {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, code, e.labels[code]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.MarshalWithOption(key, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	v, err := json.MarshalWithOption(value, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
