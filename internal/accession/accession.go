package accession

import (
	"fmt"
	"regexp"

	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Grammar is the human-readable form of the accession grammar used in error messages.
const Grammar = "ph[s/t/v][0-9]+.v[0-9]+"

var idRegex = regexp.MustCompile(`^ph([stv])([0-9]+)\.v([0-9]+)$`)

// Kind identifies what an accession refers to, from its ph? prefix letter.
type Kind byte

const (
	KindStudy    Kind = 's'
	KindTable    Kind = 't'
	KindVariable Kind = 'v'
)

// String returns the dbGaP name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStudy:
		return "study"
	case KindTable:
		return "dataset"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// ID is a parsed accession.
type ID struct {
	Kind    Kind
	Number  string // digits between the prefix and ".v", leading zeros kept
	Version string // digits after ".v"
}

// String reassembles the accession, e.g. "phv00000137.v1".
func (id ID) String() string {
	return fmt.Sprintf("ph%c%s.v%s", byte(id.Kind), id.Number, id.Version)
}

// FormatError reports an id that does not match the accession grammar.
type FormatError struct {
	ID string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid Dataset/Study/Variable id: '%s' IDs must be of form '%s'", e.ID, Grammar)
}

// Unwrap classifies the error as dbgap.ErrInvalidIdentifier.
func (e *FormatError) Unwrap() error {
	return dbgap.ErrInvalidIdentifier
}

// CheckFormat validates id against the accession grammar.
func CheckFormat(id string) error {
	if !idRegex.MatchString(id) {
		return &FormatError{ID: id}
	}
	return nil
}

// Parse validates id and decomposes it into kind, number and version.
func Parse(id string) (ID, error) {
	m := idRegex.FindStringSubmatch(id)
	if m == nil {
		return ID{}, &FormatError{ID: id}
	}
	return ID{Kind: Kind(m[1][0]), Number: m[2], Version: m[3]}, nil
}

// ParseIDAndVersion returns the base id and version of an accession:
// "pht000013235.v1" yields ("000013235", "1").
func ParseIDAndVersion(id string) (string, string, error) {
	parsed, err := Parse(id)
	if err != nil {
		return "", "", err
	}
	return parsed.Number, parsed.Version, nil
}
