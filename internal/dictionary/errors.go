package dictionary

import (
	"fmt"

	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Node types named in error messages.
const (
	NodeDataTable = "Data Table"
	NodeVariable  = "Variable"
	NodeValue     = "Value"
)

// Error is a structural problem found while reading a data dictionary.
// It carries enough context to locate the problem without re-parsing and
// unwraps to one of the dbgap sentinel errors.
type Error struct {
	Kind    error  // dbgap sentinel, e.g. dbgap.ErrMissingRequiredField
	Node    string // enclosing node type (NodeDataTable, NodeVariable, NodeValue)
	Field   string // attribute or field name if applicable
	ID      string // offending id if applicable
	Message string
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel kind so errors.Is works.
func (e *Error) Unwrap() error {
	return e.Kind
}

func missingAttributeError(node, attr string) *Error {
	return &Error{
		Kind:    dbgap.ErrMissingRequiredField,
		Node:    node,
		Field:   attr,
		Message: fmt.Sprintf("%s missing the required '%s' attribute!", node, attr),
	}
}

func missingVariableFieldError(varID, field string) *Error {
	return &Error{
		Kind:    dbgap.ErrMissingRequiredField,
		Node:    NodeVariable,
		Field:   field,
		ID:      varID,
		Message: fmt.Sprintf("Missing required variable field '%s'", field),
	}
}

func noVariablesError() *Error {
	return &Error{
		Kind:    dbgap.ErrMissingRequiredField,
		Node:    NodeDataTable,
		Field:   "variable",
		Message: "Data table contains no variables!",
	}
}

func noRootError() *Error {
	return &Error{
		Kind:    dbgap.ErrMalformedInput,
		Node:    NodeDataTable,
		Message: "XML document has no root element",
	}
}

func junkAfterRootError(what string) *Error {
	return &Error{
		Kind:    dbgap.ErrMalformedInput,
		Node:    NodeDataTable,
		Message: fmt.Sprintf("XML document is not well-formed: %s outside the root element", what),
	}
}

// duplicateVariableError reports the id exactly as supplied in the source,
// together with the id that first claimed the base accession.
func duplicateVariableError(rawID, firstRawID string) *Error {
	return &Error{
		Kind:    dbgap.ErrDuplicateIdentifier,
		Node:    NodeVariable,
		Field:   "id",
		ID:      rawID,
		Message: fmt.Sprintf("Duplicate variables with id '%s' (already defined as '%s')", rawID, firstRawID),
	}
}
