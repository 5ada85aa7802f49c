package table

import (
	"io"
	"log/slog"

	"github.com/dsnet/golib/memfile"
	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

// Table is an append-only base relation. Tuples are stored encoded and
// laid end to end in an in-memory file, so a scan reads back exactly the
// bytes the operators consume.
type Table struct {
	name    string
	schema  *record.Schema
	layout  *record.Layout
	file    *memfile.File
	size    int64
	numRecs int
	scratch []byte
}

// New creates an empty relation. The schema must pass Validate.
func New(name string, schema *record.Schema) (*Table, error) {
	if name == "" {
		return nil, errors.New("table name is empty")
	}
	if err := schema.Validate(); err != nil {
		return nil, errors.Annotatef(err, "table %q", name)
	}
	return &Table{
		name:    name,
		schema:  schema,
		layout:  record.NewLayoutFromSchema(schema),
		file:    memfile.New(make([]byte, 0)),
		scratch: make([]byte, record.PageSize),
	}, nil
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Schema() *record.Schema {
	return t.schema
}

// Len returns the number of stored tuples.
func (t *Table) Len() int {
	return t.numRecs
}

// Size returns the number of stored bytes.
func (t *Table) Size() int64 {
	return t.size
}

// Insert encodes values as one tuple and appends it. VarChar values longer
// than their declared length are rejected; a length of zero means
// unbounded.
func (t *Table) Insert(values ...record.Value) error {
	for i, v := range values {
		if i >= t.schema.Len() {
			break
		}
		attr := t.schema.Attribute(i)
		if attr.Type == record.VarChar && attr.Length > 0 && v.Type() == record.VarChar && len(v.AsString()) > attr.Length {
			return errors.Errorf("table %q: value for %q is %d bytes, limit is %d", t.name, attr.Name, len(v.AsString()), attr.Length)
		}
	}
	n, err := record.Encode(t.schema, values, t.scratch)
	if err != nil {
		return errors.Annotatef(err, "table %q", t.name)
	}
	return t.append(t.scratch[:n])
}

// InsertRaw appends an already encoded tuple. Bytes past the end of the
// tuple are ignored.
func (t *Table) InsertRaw(tuple []byte) error {
	n, err := t.layout.RecordSize(tuple)
	if err != nil {
		return errors.Annotatef(err, "table %q", t.name)
	}
	return t.append(tuple[:n])
}

func (t *Table) append(tuple []byte) error {
	if _, err := t.file.WriteAt(tuple, t.size); err != nil {
		return errors.Trace(err)
	}
	t.size += int64(len(tuple))
	t.numRecs++
	return nil
}

// Open returns a scan over the tuples stored so far. Tuples inserted after
// Open are not visible to the returned scan.
func (t *Table) Open() *scan.TableScan {
	slog.Debug("[TABLE] opening scan", "table", t.name, "records", t.numRecs, "bytes", t.size)
	return scan.NewTableScan(io.NewSectionReader(t.file, 0, t.size), t.schema, nil)
}
