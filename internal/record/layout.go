package record

import (
	"encoding/binary"
	"math"
)

// Field locates one encoded field inside a tuple buffer. Length is the full
// encoded length, including the length prefix of a VarChar.
type Field struct {
	Attr   Attribute
	Offset int
	Length int
}

// Bytes returns the encoded bytes of the field within buf.
func (f Field) Bytes(buf []byte) []byte {
	return buf[f.Offset : f.Offset+f.Length]
}

// Value returns the field as an operand. The raw bytes are copied.
func (f Field) Value(buf []byte) Value {
	return fromRaw(f.Attr.Type, f.Bytes(buf))
}

// Layout walks tuple buffers encoded with a schema. Field offsets depend on
// the VarChar lengths stored in each tuple, so every lookup walks the buffer
// from the start.
type Layout struct {
	schema *Schema
}

// NewLayoutFromSchema creates a new layout from a schema
func NewLayoutFromSchema(schema *Schema) *Layout {
	return &Layout{schema: schema}
}

// GetSchema returns the schema associated with this layout
func (l *Layout) GetSchema() *Schema {
	return l.schema
}

// HeaderSize returns how many leading bytes of a field must be read before
// its full length is known. That is the whole field for Int and Real and
// the length prefix for VarChar.
func HeaderSize(attr Attribute) (int, error) {
	switch attr.Type {
	case Int:
		return IntSize, nil
	case Real:
		return RealSize, nil
	case VarChar:
		return LengthPrefixSize, nil
	}
	return 0, violation("attribute %q has unknown type %d", attr.Name, int(attr.Type))
}

// BodySize returns how many bytes follow header, the first HeaderSize bytes
// of a field.
func BodySize(attr Attribute, header []byte) (int, error) {
	want, err := HeaderSize(attr)
	if err != nil {
		return 0, err
	}
	if len(header) != want {
		return 0, violation("attribute %q header is %d bytes, want %d", attr.Name, len(header), want)
	}
	if attr.Type != VarChar {
		return 0, nil
	}
	n := binary.LittleEndian.Uint32(header)
	if uint64(n) > uint64(math.MaxInt32) {
		return 0, violation("varchar length %d of attribute %q is not representable", n, attr.Name)
	}
	return int(n), nil
}

// next reads the length of the field under the cursor and moves past it.
func next(c *Cursor, attr Attribute) (int, error) {
	start := c.Pos()
	n, err := HeaderSize(attr)
	if err != nil {
		return 0, err
	}
	header, err := c.Bytes(n)
	if err != nil {
		return 0, err
	}
	body, err := BodySize(attr, header)
	if err != nil {
		return 0, err
	}
	if err := c.Skip(body); err != nil {
		return 0, err
	}
	return c.Pos() - start, nil
}

// FieldOffset finds the first field named fieldName. The VarChar prefix of
// every preceding field is read to advance the offset. It reports false if
// no attribute has that name.
func (l *Layout) FieldOffset(buf []byte, fieldName string) (Field, bool, error) {
	c := NewCursor(buf)
	for _, attr := range l.schema.attrs {
		offset := c.Pos()
		length, err := next(c, attr)
		if err != nil {
			return Field{}, false, err
		}
		if attr.Name == fieldName {
			return Field{Attr: attr, Offset: offset, Length: length}, true, nil
		}
	}
	return Field{}, false, nil
}

// RecordSize returns the total encoded size of the tuple in buf.
func (l *Layout) RecordSize(buf []byte) (int, error) {
	c := NewCursor(buf)
	for _, attr := range l.schema.attrs {
		if _, err := next(c, attr); err != nil {
			return 0, err
		}
	}
	return c.Pos(), nil
}

// Fields locates every field of the tuple in a single walk.
func (l *Layout) Fields(buf []byte) ([]Field, error) {
	c := NewCursor(buf)
	fields := make([]Field, 0, len(l.schema.attrs))
	for _, attr := range l.schema.attrs {
		offset := c.Pos()
		length, err := next(c, attr)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Attr: attr, Offset: offset, Length: length})
	}
	return fields, nil
}
