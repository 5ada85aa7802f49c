package query

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

// newTestScan encodes rows with schema into an in-memory relation and opens
// a TableScan over it.
func newTestScan(t *testing.T, schema *record.Schema, rows ...[]record.Value) *scan.TableScan {
	var data bytes.Buffer
	for _, row := range rows {
		tuple, err := record.EncodeTuple(schema, row...)
		require.NoError(t, err)
		data.Write(tuple)
	}
	return scan.NewTableScan(bytes.NewReader(data.Bytes()), schema, nil)
}

func intSchema(name string) *record.Schema {
	schema := record.NewSchema()
	schema.AddIntField(name)
	return schema
}

func intRows(vals ...int32) [][]record.Value {
	rows := make([][]record.Value, len(vals))
	for i, v := range vals {
		rows[i] = []record.Value{record.NewIntValue(v)}
	}
	return rows
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

// countingScan counts the tuples and EOFs its input hands out and hides
// BeforeFirst, like an outer input that can only be read once.
type countingScan struct {
	input  scan.Scan
	pulled int
	eofs   int
	closed bool
}

func (c *countingScan) Next(out []byte) error {
	err := c.input.Next(out)
	if err == nil {
		c.pulled++
	} else {
		c.eofs++
	}
	return err
}

func (c *countingScan) Schema() *record.Schema {
	return c.input.Schema()
}

func (c *countingScan) Close() {
	c.closed = true
	c.input.Close()
}

// resetCounter counts rewinds of a resettable input.
type resetCounter struct {
	*scan.TableScan
	resets int
}

func (r *resetCounter) BeforeFirst() error {
	r.resets++
	return r.TableScan.BeforeFirst()
}

// failingScan fails the failAt-th call to Next once, then reads on as if
// nothing happened.
type failingScan struct {
	*scan.TableScan
	calls  int
	failAt int
	err    error
}

func (f *failingScan) Next(out []byte) error {
	f.calls++
	if f.calls == f.failAt {
		return f.err
	}
	return f.TableScan.Next(out)
}
