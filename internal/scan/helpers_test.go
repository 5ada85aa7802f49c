package scan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneqe/internal/record"
)

// newTestScan encodes rows with schema into an in-memory relation and opens
// a TableScan over it.
func newTestScan(t *testing.T, schema *record.Schema, rows ...[]record.Value) *TableScan {
	var data bytes.Buffer
	for _, row := range rows {
		tuple, err := record.EncodeTuple(schema, row...)
		require.NoError(t, err)
		data.Write(tuple)
	}
	return NewTableScan(bytes.NewReader(data.Bytes()), schema, nil)
}

// idNameSchema returns the [id:int, name:varchar] schema.
func idNameSchema() *record.Schema {
	schema := record.NewSchema()
	schema.AddIntField("id")
	schema.AddStringField("name", 20)
	return schema
}

func idNameRows() [][]record.Value {
	return [][]record.Value{
		{record.NewIntValue(1), record.NewStringValue("a")},
		{record.NewIntValue(2), record.NewStringValue("bb")},
		{record.NewIntValue(3), record.NewStringValue("a")},
	}
}

// decodeAll decodes every tuple against schema and returns plain Go values.
func decodeAll(t *testing.T, schema *record.Schema, tuples [][]byte) [][]any {
	rows := make([][]any, 0, len(tuples))
	for _, tuple := range tuples {
		values, err := record.Decode(schema, tuple)
		require.NoError(t, err)
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v.Interface()
		}
		rows = append(rows, row)
	}
	return rows
}
