package dictionary

import (
	"github.com/vvka-141/dbgapdd/internal/accession"
)

// EncodedValue is one CODE=VALUE pair of a coded variable.
type EncodedValue struct {
	Code  string
	Value string
}

// String renders the pair in the dbGaP cell form "code=value".
func (v EncodedValue) String() string {
	return v.Code + "=" + v.Value
}

// Dataset holds the data-table level metadata shared by every variable.
type Dataset struct {
	ID             accession.ID
	StudyID        accession.ID
	ParticipantSet string
	Description    *string // nil when the <description> node is absent or empty
	Name           *string // parsed from the source filename, nil when it does not match
	UniqueKeys     []string
}

// Variable is one <variable> node.
//
// Optional fields are nil when their node is absent. A node that is present
// with no text yields a pointer to the empty string, which the tabular view
// renders as null.
type Variable struct {
	RawID       string // id attribute as written in the document
	Accession   string // base id, prefix and version stripped
	Version     string
	Name        string
	Description string
	Type        *string
	Units       *string
	Min         *string
	Max         *string
	UniqueKey   bool
	Values      []EncodedValue // document order, duplicates kept
}

// DataDictionary is the parsed form of one XML data dictionary.
// It is immutable after Read returns.
type DataDictionary struct {
	Source    string
	Dataset   Dataset
	Variables []Variable
}

// Len returns the number of variables.
func (dd *DataDictionary) Len() int {
	return len(dd.Variables)
}

// ValueColumnCount returns how many encoded-value columns (VALUES plus
// overflow columns) the tabular view has.
func (dd *DataDictionary) ValueColumnCount() int {
	n := 0
	for _, v := range dd.Variables {
		if len(v.Values) > n {
			n = len(v.Values)
		}
	}
	return n
}
