package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueBasic(t *testing.T) {
	i := NewIntValue(42)
	assert.Equal(t, Int, i.Type())
	assert.Equal(t, int32(42), i.AsInt())
	assert.Equal(t, "42", i.String())
	assert.Equal(t, int32(42), i.Interface())

	r := NewRealValue(1.25)
	assert.Equal(t, float32(1.25), r.AsReal())
	assert.Equal(t, "1.25", r.String())

	s := NewStringValue("hello")
	assert.Equal(t, "hello", s.AsString())
	assert.Equal(t, `"hello"`, s.String())
	assert.Len(t, s.raw, 4+5)

	var zero Value
	assert.True(t, zero.IsZero())
	assert.Equal(t, "<nil>", zero.String())
}

func TestValueCompare(t *testing.T) {
	tests := []struct {
		name string
		l, r Value
		want map[CompOp]bool
	}{
		{
			name: "IntLess",
			l:    NewIntValue(-1), r: NewIntValue(2),
			want: map[CompOp]bool{EQ: false, LT: true, GT: false, LE: true, GE: false, NE: true, NONE: true},
		},
		{
			name: "IntEqual",
			l:    NewIntValue(5), r: NewIntValue(5),
			want: map[CompOp]bool{EQ: true, LT: false, GT: false, LE: true, GE: true, NE: false, NONE: true},
		},
		{
			name: "RealGreater",
			l:    NewRealValue(2.5), r: NewRealValue(2.25),
			want: map[CompOp]bool{EQ: false, LT: false, GT: true, LE: false, GE: true, NE: true, NONE: true},
		},
		{
			name: "StringPrefixSortsFirst",
			l:    NewStringValue("ab"), r: NewStringValue("abc"),
			want: map[CompOp]bool{EQ: false, LT: true, GT: false, LE: true, GE: false, NE: true, NONE: true},
		},
		{
			name: "StringEqual",
			l:    NewStringValue("a"), r: NewStringValue("a"),
			want: map[CompOp]bool{EQ: true, LT: false, GT: false, LE: true, GE: true, NE: false, NONE: true},
		},
		{
			name: "TypeMismatch",
			l:    NewIntValue(1), r: NewRealValue(1),
			want: map[CompOp]bool{EQ: false, LT: false, GT: false, LE: false, GE: false, NE: false, NONE: false},
		},
		{
			name: "NaN",
			l:    NewRealValue(float32(math.NaN())), r: NewRealValue(1),
			want: map[CompOp]bool{EQ: false, LT: false, GT: false, LE: false, GE: false, NE: true, NONE: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for op, want := range tc.want {
				assert.Equal(t, want, tc.l.Compare(tc.r, op), "op %s", op)
			}
		})
	}
}

func TestValueHash(t *testing.T) {
	a := NewStringValue("x")
	b := NewStringValue("x")
	assert.Equal(t, a, b)
	assert.Equal(t, a.Hash(), b.Hash())

	// Same bytes, different type
	i := NewIntValue(0)
	r := NewRealValue(0)
	assert.Equal(t, i.raw, r.raw)
	assert.NotEqual(t, i.Hash(), r.Hash())
}

func TestParseCompOp(t *testing.T) {
	for token, want := range map[string]CompOp{
		"=": EQ, "<": LT, ">": GT, "<=": LE, ">=": GE, "!=": NE, "<>": NE, "none": NONE, "": NONE,
	} {
		got, err := ParseCompOp(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}
	_, err := ParseCompOp("~")
	assert.Error(t, err)
}
