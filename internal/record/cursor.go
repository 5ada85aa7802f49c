package record

import (
	"encoding/binary"
	"math"
)

// Cursor is a bounds-checked read view over a tuple buffer. It tracks the
// current position and refuses any read that would run past the end of the
// buffer.
type Cursor struct {
	bytes []byte
	pos   int
}

// NewCursor creates a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{bytes: b}
}

// Pos returns the current offset from the start of the buffer.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of bytes left after the current position.
func (c *Cursor) Remaining() int {
	return len(c.bytes) - c.pos
}

func (c *Cursor) need(n int) error {
	if n < 0 || n > c.Remaining() {
		return violation("read of %d bytes at offset %d exceeds capacity %d", n, c.pos, len(c.bytes))
	}
	return nil
}

// Bytes returns the next n bytes without copying and advances past them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.bytes[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// Int reads a 4-byte little-endian signed integer.
func (c *Cursor) Int() (int32, error) {
	b, err := c.Bytes(IntSize)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// Real reads a 4-byte little-endian IEEE-754 float.
func (c *Cursor) Real() (float32, error) {
	b, err := c.Bytes(RealSize)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// Writer appends encoded fields into a fixed-capacity output buffer.
type Writer struct {
	bytes []byte
	pos   int
}

// NewWriter creates a writer that fills b from the start.
func NewWriter(b []byte) *Writer {
	return &Writer{bytes: b}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.pos
}

func (w *Writer) room(n int) error {
	if n > len(w.bytes)-w.pos {
		return violation("write of %d bytes at offset %d exceeds capacity %d", n, w.pos, len(w.bytes))
	}
	return nil
}

// Write copies b verbatim.
func (w *Writer) Write(b []byte) error {
	if err := w.room(len(b)); err != nil {
		return err
	}
	w.pos += copy(w.bytes[w.pos:], b)
	return nil
}

// PutInt writes a 4-byte little-endian signed integer.
func (w *Writer) PutInt(v int32) error {
	if err := w.room(IntSize); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.bytes[w.pos:], uint32(v))
	w.pos += IntSize
	return nil
}

// PutReal writes a 4-byte little-endian IEEE-754 float.
func (w *Writer) PutReal(v float32) error {
	if err := w.room(RealSize); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.bytes[w.pos:], math.Float32bits(v))
	w.pos += RealSize
	return nil
}

// PutString writes a length prefix followed by the payload.
func (w *Writer) PutString(b []byte) error {
	if err := w.room(LengthPrefixSize + len(b)); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.bytes[w.pos:], uint32(len(b)))
	w.pos += LengthPrefixSize
	w.pos += copy(w.bytes[w.pos:], b)
	return nil
}
