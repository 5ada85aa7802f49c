package record

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/yashagw/craneqe/internal/utils"
)

// Value is a typed operand holding its encoded bytes. The raw form is the
// same as the field encoding in a tuple, so a VarChar value carries its
// length prefix.
type Value struct {
	typ FieldType
	raw []byte
}

// NewIntValue creates a new Value holding an Int.
func NewIntValue(v int32) Value {
	raw := make([]byte, IntSize)
	binary.LittleEndian.PutUint32(raw, uint32(v))
	return Value{typ: Int, raw: raw}
}

// NewRealValue creates a new Value holding a Real.
func NewRealValue(v float32) Value {
	raw := make([]byte, RealSize)
	binary.LittleEndian.PutUint32(raw, math.Float32bits(v))
	return Value{typ: Real, raw: raw}
}

// NewStringValue creates a new Value holding a VarChar.
func NewStringValue(v string) Value {
	raw := make([]byte, LengthPrefixSize+len(v))
	binary.LittleEndian.PutUint32(raw, uint32(len(v)))
	copy(raw[LengthPrefixSize:], v)
	return Value{typ: VarChar, raw: raw}
}

func fromRaw(t FieldType, raw []byte) Value {
	b := make([]byte, len(raw))
	copy(b, raw)
	return Value{typ: t, raw: b}
}

// Type returns the type of the value.
func (v Value) Type() FieldType {
	return v.typ
}

// IsZero reports whether v was never assigned.
func (v Value) IsZero() bool {
	return v.raw == nil
}

// AsInt returns the integer held by an Int value.
func (v Value) AsInt() int32 {
	return int32(binary.LittleEndian.Uint32(v.raw))
}

// AsReal returns the float held by a Real value.
func (v Value) AsReal() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v.raw))
}

// payload returns the characters of a VarChar value without the prefix.
func (v Value) payload() []byte {
	return v.raw[LengthPrefixSize:]
}

// AsString returns the characters held by a VarChar value.
func (v Value) AsString() string {
	return string(v.payload())
}

// Interface returns the value as a plain Go value (int32, float32 or string).
func (v Value) Interface() any {
	switch v.typ {
	case Int:
		return v.AsInt()
	case Real:
		return v.AsReal()
	case VarChar:
		return v.AsString()
	}
	return nil
}

func (v Value) String() string {
	if v.IsZero() {
		return "<nil>"
	}
	switch v.typ {
	case Int:
		return strconv.FormatInt(int64(v.AsInt()), 10)
	case Real:
		return strconv.FormatFloat(float64(v.AsReal()), 'g', -1, 32)
	case VarChar:
		return strconv.Quote(v.AsString())
	}
	return "<invalid>"
}

// Compare applies op to v and other. Operands of different types never
// compare: the result is false whatever the operator. NONE is true for any
// two operands of the same type. VarChar values compare their payload bytes
// lexicographically.
func (v Value) Compare(other Value, op CompOp) bool {
	if v.IsZero() || other.IsZero() || v.typ != other.typ {
		return false
	}
	if op == NONE {
		return true
	}
	switch v.typ {
	case Int:
		return compareOrdered(v.AsInt(), other.AsInt(), op)
	case Real:
		return compareOrdered(v.AsReal(), other.AsReal(), op)
	case VarChar:
		return compareOrdered(bytes.Compare(v.payload(), other.payload()), 0, op)
	}
	return false
}

// Hash returns a hash of the type and encoding of the value.
func (v Value) Hash() uint32 {
	b := make([]byte, 0, 1+len(v.raw))
	b = append(b, byte(v.typ))
	b = append(b, v.raw...)
	return utils.HashBytes(b)
}

func compareOrdered[T cmp.Ordered](l, r T, op CompOp) bool {
	switch op {
	case EQ:
		return l == r
	case LT:
		return l < r
	case GT:
		return l > r
	case LE:
		return l <= r
	case GE:
		return l >= r
	case NE:
		return l != r
	case NONE:
		return true
	}
	return false
}
