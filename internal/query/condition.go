package query

import (
	"fmt"

	"github.com/yashagw/craneqe/internal/record"
)

// Condition is a binary comparison between an attribute and either another
// attribute or a literal value. RhsIsAttr selects which right-hand side is
// active.
type Condition struct {
	LhsAttr   string
	Op        record.CompOp
	RhsIsAttr bool
	RhsAttr   string
	RhsValue  record.Value
}

// NewAttrCondition creates a Condition comparing two attributes.
func NewAttrCondition(lhs string, op record.CompOp, rhs string) Condition {
	return Condition{
		LhsAttr:   lhs,
		Op:        op,
		RhsIsAttr: true,
		RhsAttr:   rhs,
	}
}

// NewValueCondition creates a Condition comparing an attribute to a literal.
func NewValueCondition(lhs string, op record.CompOp, rhs record.Value) Condition {
	return Condition{
		LhsAttr:  lhs,
		Op:       op,
		RhsValue: rhs,
	}
}

// Bind returns a copy of the condition whose right-hand side is the literal
// v. The left-hand side and operator are kept.
func (c Condition) Bind(v record.Value) Condition {
	return Condition{
		LhsAttr:  c.LhsAttr,
		Op:       c.Op,
		RhsAttr:  c.RhsAttr,
		RhsValue: v,
	}
}

// AppliesTo checks if every attribute the condition references is in the schema.
func (c Condition) AppliesTo(sch *record.Schema) bool {
	if !sch.HasField(c.LhsAttr) {
		return false
	}
	return !c.RhsIsAttr || sch.HasField(c.RhsAttr)
}

// String returns a string representation of the condition
func (c Condition) String() string {
	if c.RhsIsAttr {
		return fmt.Sprintf("%s %s %s", c.LhsAttr, c.Op, c.RhsAttr)
	}
	return fmt.Sprintf("%s %s %s", c.LhsAttr, c.Op, c.RhsValue)
}

// EquatesWithConstant returns the literal fieldName is equated with, if the
// condition has the form "fieldName = literal".
func (c Condition) EquatesWithConstant(fieldName string) (record.Value, bool) {
	if c.Op == record.EQ && !c.RhsIsAttr && c.LhsAttr == fieldName {
		return c.RhsValue, true
	}
	return record.Value{}, false
}

// EquatesWithField returns the attribute on the other side of a
// "field = field" condition that mentions fieldName.
func (c Condition) EquatesWithField(fieldName string) (string, bool) {
	if c.Op != record.EQ || !c.RhsIsAttr {
		return "", false
	}
	switch fieldName {
	case c.LhsAttr:
		return c.RhsAttr, true
	case c.RhsAttr:
		return c.LhsAttr, true
	}
	return "", false
}

// DistinctValuer estimates the number of distinct values of a field.
type DistinctValuer interface {
	DistinctValues(fieldName string) (int, error)
}

// rangeReduction is the assumed selectivity divisor of an ordered comparison.
const rangeReduction = 3

// ReductionFactor estimates by how much the condition divides the size of
// its input. lhs supplies statistics for the left-hand attribute and rhs for
// a right-hand attribute.
func (c Condition) ReductionFactor(lhs, rhs DistinctValuer) (int, error) {
	switch c.Op {
	case record.NONE, record.NE:
		return 1, nil
	case record.EQ:
	default:
		return rangeReduction, nil
	}

	factor, err := lhs.DistinctValues(c.LhsAttr)
	if err != nil {
		return 0, err
	}
	if c.RhsIsAttr {
		other, err := rhs.DistinctValues(c.RhsAttr)
		if err != nil {
			return 0, err
		}
		factor = max(factor, other)
	}
	return max(factor, 1), nil
}
