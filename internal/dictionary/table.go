package dictionary

import (
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Table is a column-oriented view of a data dictionary.
// A cell is either a string or null; an absent map key is null.
type Table struct {
	columns []string
	index   map[string]struct{}
	rows    []map[string]string
}

// NewTable creates a table with the given column order and rows.
// Row keys that are not listed in columns are ignored by lookups.
func NewTable(columns []string, rows []map[string]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]struct{}, len(columns)),
		rows:    rows,
	}
	for _, c := range columns {
		t.index[c] = struct{}{}
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a view of the i-th row.
func (t *Table) Row(i int) Row {
	return Row{table: t, values: t.rows[i]}
}

// ValueColumns returns the encoded-value columns present, in table order.
func (t *Table) ValueColumns() []string {
	var cols []string
	for _, c := range t.columns {
		if dbgap.IsValueColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Row is a read-only view of one table row.
type Row struct {
	table  *Table
	values map[string]string
}

// Has reports whether the row's table has the named column.
func (r Row) Has(column string) bool {
	return r.table.HasColumn(column)
}

// Get returns the cell value; ok is false when the cell is null or the
// column does not exist.
func (r Row) Get(column string) (value string, ok bool) {
	if !r.table.HasColumn(column) {
		return "", false
	}
	value, ok = r.values[column]
	return value, ok
}

// Table builds the tabular view: the canonical dbGaP columns, then the
// version and dataset-name companions, then the X__n overflow columns.
// A per-variable column is present when at least one variable carries it.
func (dd *DataDictionary) Table() *Table {
	present := map[string]bool{
		dbgap.VariableAccField:    true,
		dbgap.DatasetAccField:     true,
		dbgap.DatasetPartSetField: true,
		dbgap.StudyAccField:       true,
		dbgap.DatasetDescField:    true,
		dbgap.VarNameField:        true,
		dbgap.VarDescField:        true,
	}

	rows := make([]map[string]string, 0, len(dd.Variables))
	for _, v := range dd.Variables {
		row := dd.datasetCells()
		row[dbgap.VariableAccField] = v.Accession
		row[dbgap.VariableVersionField] = v.Version
		row[dbgap.VarNameField] = v.Name
		row[dbgap.VarDescField] = v.Description

		for field, val := range map[string]*string{
			dbgap.TypeField:  v.Type,
			dbgap.UnitsField: v.Units,
			dbgap.MinField:   v.Min,
			dbgap.MaxField:   v.Max,
		} {
			if val == nil {
				continue
			}
			present[field] = true
			if *val != "" {
				row[field] = *val
			}
		}

		if v.UniqueKey {
			present[dbgap.UniqueKeyField] = true
			row[dbgap.UniqueKeyField] = dbgap.UniqueKeyMarker
		}

		for i, ev := range v.Values {
			row[valueColumn(i)] = ev.String()
		}
		rows = append(rows, row)
	}

	present[dbgap.ValuesField] = dd.ValueColumnCount() > 0

	var columns []string
	for _, c := range dbgap.ReadColumnOrder {
		if present[c] {
			columns = append(columns, c)
		}
	}
	columns = append(columns, dbgap.CompanionColumnOrder...)
	for i := 1; i < dd.ValueColumnCount(); i++ {
		columns = append(columns, dbgap.OverflowColumn(i))
	}

	return NewTable(columns, rows)
}

// datasetCells returns a fresh row seeded with the dataset-level fields.
func (dd *DataDictionary) datasetCells() map[string]string {
	ds := dd.Dataset
	row := map[string]string{
		dbgap.DatasetAccField:     ds.ID.Number,
		dbgap.DatasetVersionField: ds.ID.Version,
		dbgap.StudyAccField:       ds.StudyID.Number,
		dbgap.StudyVersionField:   ds.StudyID.Version,
		dbgap.DatasetPartSetField: ds.ParticipantSet,
	}
	if ds.Description != nil && *ds.Description != "" {
		row[dbgap.DatasetDescField] = *ds.Description
	}
	if ds.Name != nil {
		row[dbgap.DatasetNameField] = *ds.Name
	}
	return row
}

// valueColumn names the column holding the i-th (0-based) encoded value.
func valueColumn(i int) string {
	if i == 0 {
		return dbgap.ValuesField
	}
	return dbgap.OverflowColumn(i)
}
