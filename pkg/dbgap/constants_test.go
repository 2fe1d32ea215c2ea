package dbgap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

func TestOverflowIndex(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"X__1", 1, true},
		{"X__10", 10, true},
		{"X__0", 0, false},
		{"X_1", 0, false},
		{"X__", 0, false},
		{"X__1a", 0, false},
		{"VALUES", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dbgap.OverflowIndex(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverflowColumn_RoundTrip(t *testing.T) {
	for n := 1; n <= 12; n++ {
		got, ok := dbgap.OverflowIndex(dbgap.OverflowColumn(n))
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
}

func TestIsValueColumn(t *testing.T) {
	assert.True(t, dbgap.IsValueColumn("VALUES"))
	assert.True(t, dbgap.IsValueColumn("X__4"))
	assert.False(t, dbgap.IsValueColumn("ENCODED_VALUES"))
	assert.False(t, dbgap.IsValueColumn("VARNAME"))
}

func TestDefaultOutputFields(t *testing.T) {
	fields := dbgap.DefaultOutputFields()
	assert.Equal(t, len(dbgap.RequiredJSONFields)+len(dbgap.OptionalJSONFields), len(fields))
	assert.Equal(t, dbgap.VariableAccField, fields[0])
	assert.Equal(t, dbgap.EncodedValuesField, fields[len(fields)-1])

	fields[0] = "mutated"
	assert.Equal(t, dbgap.VariableAccField, dbgap.RequiredJSONFields[0])
}
