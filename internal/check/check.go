package check

import (
	"fmt"
	"strings"

	"github.com/vvka-141/dbgapdd/internal/dictionary"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Result collects the non-fatal findings of a dictionary check.
type Result struct {
	Warnings     []string
	ValueColumns []string
}

func (r *Result) warn(logger dbgap.Logger, msg string) {
	r.Warnings = append(r.Warnings, msg)
	logger.Warn("%s", msg)
}

// EncodedValue validates one CODE=VALUE cell of variable. A nil raw value is a
// null cell and always passes. More than one '=' is logged as a warning.
func EncodedValue(variable string, raw *string, logger dbgap.Logger) error {
	warning, err := encodedValue(variable, raw)
	if warning != "" {
		logger.Warn("%s", warning)
	}
	return err
}

func encodedValue(variable string, raw *string) (string, error) {
	if raw == nil {
		return "", nil
	}
	if !strings.Contains(*raw, "=") {
		return "", &EncodingError{Kind: dbgap.ErrMalformedEncoding, Variable: variable, Raw: *raw}
	}

	parts := strings.Split(*raw, "=")
	if len(parts) > 2 {
		return fmt.Sprintf("Variable %s possibly contains multiple encoded variables in single field: %s", variable, *raw), nil
	}
	if parts[1] == "" {
		return "", &EncodingError{Kind: dbgap.ErrEmptyEncodingValue, Variable: variable, Raw: *raw}
	}
	return "", nil
}

// Dictionary checks the column set of t against required and optional and
// validates every encoded value cell.
//
// All missing required columns are reported together in one StructuralError.
// Missing optional columns, unknown columns and the absence of any value
// column are warnings. The first bad encoded value aborts the check.
func Dictionary(t *dictionary.Table, required, optional []string, logger dbgap.Logger) (Result, error) {
	var result Result
	logger.Info("Checking dbgap data dictionary structure...")

	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			logger.Error("Required column '%s' missing from data dictionary!", col)
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return result, MissingColumnsError(missing)
	}

	missing = nil
	for _, col := range optional {
		// ENCODED_VALUES is produced by the reformatter
		if col != dbgap.EncodedValuesField && !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		result.warn(logger, fmt.Sprintf("Optional columns missing from data dictionary: %s", strings.Join(missing, ", ")))
	}

	known := make(map[string]bool, len(required)+len(optional)+len(dbgap.CompanionColumnOrder))
	for _, cols := range [][]string{required, optional, dbgap.CompanionColumnOrder} {
		for _, col := range cols {
			known[col] = true
		}
	}
	var unknown []string
	for _, col := range t.Columns() {
		if !known[col] && !dbgap.IsValueColumn(col) {
			unknown = append(unknown, col)
		}
	}
	if len(unknown) > 0 {
		result.warn(logger, fmt.Sprintf("Ignoring columns in data dictionary: %s", strings.Join(unknown, ", ")))
	}

	result.ValueColumns = t.ValueColumns()
	if len(result.ValueColumns) == 0 {
		result.warn(logger, "No encoded value fields detected in data dictionary!")
	}

	for _, col := range result.ValueColumns {
		for i := 0; i < t.Len(); i++ {
			row := t.Row(i)
			cell, ok := row.Get(col)
			if !ok {
				continue
			}
			variable, _ := row.Get(dbgap.VariableAccField)
			warning, err := encodedValue(variable, &cell)
			if err != nil {
				return result, err
			}
			if warning != "" {
				result.warn(logger, warning)
			}
		}
	}

	return result, nil
}
