package scan

import (
	"io"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
)

var (
	_ ResettableScan = (*TableScan)(nil)
)

// TableScan reads a relation stored as encoded tuples laid end to end. No
// sizes are stored: each tuple is consumed field by field, following the
// VarChar length prefixes, so the schema alone delimits the records.
//
// A tuple that does not fit the caller's buffer is not consumed: the reader
// is moved back to the start of the tuple. A truncated relation or a failed
// read leaves the scan broken, and every later Next returns the same error
// until BeforeFirst.
type TableScan struct {
	reader io.ReadSeeker
	schema *record.Schema
	closer func()
	offset int64
	read   int
	err    error
}

// NewTableScan creates a scan over the tuples in r, positioned before the
// first one. closer, if not nil, runs once on Close.
func NewTableScan(r io.ReadSeeker, schema *record.Schema, closer func()) *TableScan {
	return &TableScan{
		reader: r,
		schema: schema,
		closer: closer,
	}
}

// BeforeFirst positions the scanner before the first record
func (ts *TableScan) BeforeFirst() error {
	if ts.reader == nil {
		return ErrClosed
	}
	if _, err := ts.reader.Seek(0, io.SeekStart); err != nil {
		return errors.Trace(err)
	}
	ts.offset = 0
	ts.read = 0
	ts.err = nil
	return nil
}

// Next copies the next stored tuple into out. A relation with an empty
// schema holds no tuples.
func (ts *TableScan) Next(out []byte) error {
	if ts.reader == nil {
		return ErrClosed
	}
	if ts.err != nil {
		return ts.err
	}
	if ts.schema.Len() == 0 {
		return io.EOF
	}

	pos := 0
	for i := 0; i < ts.schema.Len(); i++ {
		attr := ts.schema.Attribute(i)
		var err error
		pos, err = ts.readField(out, pos, attr)
		if err == nil {
			continue
		}
		switch {
		case err == io.EOF && pos == 0:
			return io.EOF
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			ts.err = errors.Annotatef(record.ErrContractViolation, "truncated tuple %d at field %q", ts.read, attr.Name)
		case record.IsContractViolation(err):
			if _, serr := ts.reader.Seek(ts.offset, io.SeekStart); serr != nil {
				ts.err = errors.Trace(serr)
				return ts.err
			}
			return err
		default:
			ts.err = errors.Trace(err)
		}
		return ts.err
	}
	ts.offset += int64(pos)
	ts.read++
	return nil
}

// readField reads one encoded field into out at pos and returns the offset
// past it.
func (ts *TableScan) readField(out []byte, pos int, attr record.Attribute) (int, error) {
	n, err := record.HeaderSize(attr)
	if err != nil {
		return pos, err
	}
	start := pos
	if pos, err = ts.readInto(out, pos, n); err != nil {
		return pos, err
	}
	body, err := record.BodySize(attr, out[start:pos])
	if err != nil {
		return pos, err
	}
	return ts.readInto(out, pos, body)
}

func (ts *TableScan) readInto(out []byte, pos int, n int) (int, error) {
	if n > len(out)-pos {
		return pos, errors.Annotatef(record.ErrContractViolation, "tuple %d needs %d bytes at offset %d, buffer holds %d", ts.read, n, pos, len(out))
	}
	if n == 0 {
		return pos, nil
	}
	if _, err := io.ReadFull(ts.reader, out[pos:pos+n]); err != nil {
		return pos, err
	}
	return pos + n, nil
}

func (ts *TableScan) Schema() *record.Schema {
	return ts.schema
}

// Close drops the reader and runs the closer
func (ts *TableScan) Close() {
	if ts.reader == nil {
		return
	}
	ts.reader = nil
	if ts.closer != nil {
		ts.closer()
	}
}
