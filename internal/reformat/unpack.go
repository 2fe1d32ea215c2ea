package reformat

import (
	"strings"

	"github.com/vvka-141/dbgapdd/internal/dictionary"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// UnpackEncodedValues collects the CODE=VALUE pairs of a row: VALUES first,
// then X__1, X__2, ... up to the first overflow column the table lacks.
// Null cells and cells without '=' are skipped; a cell is split at its first
// '='. Returns nil when no pair was found.
func UnpackEncodedValues(row dictionary.Row) *EncodedValues {
	values := NewEncodedValues()

	add := func(column string) {
		cell, ok := row.Get(column)
		if !ok {
			return
		}
		code, label, found := strings.Cut(cell, "=")
		if !found {
			return
		}
		values.Set(code, label)
	}

	add(dbgap.ValuesField)
	for n := 1; row.Has(dbgap.OverflowColumn(n)); n++ {
		add(dbgap.OverflowColumn(n))
	}

	if values.Len() == 0 {
		return nil
	}
	return values
}
