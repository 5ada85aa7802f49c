package query

import (
	"github.com/yashagw/craneqe/internal/record"
)

// Evaluator checks conditions against tuples of one schema.
type Evaluator struct {
	schema *record.Schema
	layout *record.Layout
}

func NewEvaluator(schema *record.Schema) *Evaluator {
	return &Evaluator{
		schema: schema,
		layout: record.NewLayoutFromSchema(schema),
	}
}

// IsSatisfied reports whether the tuple in buf satisfies cond. Conditions
// that cannot be resolved are false: an empty schema, an attribute missing
// from the schema, an unset literal, or operands of different types. An
// error is returned only when buf is malformed.
func (e *Evaluator) IsSatisfied(buf []byte, cond Condition) (bool, error) {
	if e.schema.Len() == 0 {
		return false, nil
	}

	lhs, ok, err := e.resolve(buf, cond.LhsAttr)
	if err != nil || !ok {
		return false, err
	}

	rhs := cond.RhsValue
	if cond.RhsIsAttr {
		rhs, ok, err = e.resolve(buf, cond.RhsAttr)
		if err != nil || !ok {
			return false, err
		}
	}
	return lhs.Compare(rhs, cond.Op), nil
}

func (e *Evaluator) resolve(buf []byte, name string) (record.Value, bool, error) {
	f, ok, err := e.layout.FieldOffset(buf, name)
	if err != nil || !ok {
		return record.Value{}, false, err
	}
	return f.Value(buf), true, nil
}

// Evaluate checks cond against one tuple of schema.
func Evaluate(schema *record.Schema, buf []byte, cond Condition) (bool, error) {
	return NewEvaluator(schema).IsSatisfied(buf, cond)
}
