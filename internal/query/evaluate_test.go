package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneqe/internal/record"
)

func TestEvaluate(t *testing.T) {
	schema := record.NewSchema()
	schema.AddStringField("name", 20)
	schema.AddIntField("age")
	schema.AddIntField("limit")
	schema.AddRealField("score")
	schema.AddStringField("nick", 20)

	tuple, err := record.EncodeTuple(schema,
		record.NewStringValue("carol"),
		record.NewIntValue(30),
		record.NewIntValue(40),
		record.NewRealValue(7.5),
		record.NewStringValue("carol"),
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"IntEqual", NewValueCondition("age", record.EQ, record.NewIntValue(30)), true},
		{"IntNotEqual", NewValueCondition("age", record.NE, record.NewIntValue(30)), false},
		{"IntAttrLess", NewAttrCondition("age", record.LT, "limit"), true},
		{"IntAttrGreaterEqual", NewAttrCondition("age", record.GE, "limit"), false},
		{"RealLessEqual", NewValueCondition("score", record.LE, record.NewRealValue(7.5)), true},
		{"StringAfterVarChar", NewValueCondition("name", record.GT, record.NewStringValue("bob")), true},
		{"StringAttrEqual", NewAttrCondition("name", record.EQ, "nick"), true},
		{"SameAttribute", NewAttrCondition("age", record.EQ, "age"), true},
		{"NoneOperator", NewValueCondition("age", record.NONE, record.NewIntValue(0)), true},
		{"MissingLhs", NewValueCondition("missing", record.NONE, record.NewIntValue(0)), false},
		{"MissingRhs", NewAttrCondition("age", record.NONE, "missing"), false},
		{"CaseSensitive", NewValueCondition("Age", record.EQ, record.NewIntValue(30)), false},
		{"TypeMismatch", NewValueCondition("age", record.EQ, record.NewRealValue(30)), false},
		{"TypeMismatchNone", NewAttrCondition("age", record.NONE, "name"), false},
		{"UnsetLiteral", Condition{LhsAttr: "age", Op: record.NONE}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(schema, tuple, tc.cond)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateEmptySchema(t *testing.T) {
	got, err := Evaluate(record.NewSchema(), nil, NewValueCondition("a", record.NONE, record.NewIntValue(1)))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluateMalformedBuffer(t *testing.T) {
	schema := record.NewSchema()
	schema.AddStringField("name", 20)
	schema.AddIntField("age")

	// The length prefix claims 200 bytes
	bogus := []byte{200, 0, 0, 0, 'a', 'b', 1, 0, 0, 0}
	_, err := Evaluate(schema, bogus, NewValueCondition("age", record.EQ, record.NewIntValue(1)))
	assert.True(t, record.IsContractViolation(err))
}
