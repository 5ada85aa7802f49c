package plan

import (
	"log/slog"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/query"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

var (
	_ Plan = (*JoinPlan)(nil)
)

// JoinPlan is the Plan for a nested-loop join of outer and inner.
type JoinPlan struct {
	outer    Plan
	inner    Plan
	cond     query.Condition
	numPages int
	schema   *record.Schema
}

func NewJoinPlan(outer Plan, inner Plan, cond query.Condition, numPages int) *JoinPlan {
	schema := record.NewSchema()
	schema.CopyAll(outer.Schema())
	schema.CopyAll(inner.Schema())
	return &JoinPlan{
		outer:    outer,
		inner:    inner,
		cond:     cond,
		numPages: numPages,
		schema:   schema,
	}
}

func (jp *JoinPlan) Open() (scan.Scan, error) {
	outer, err := jp.outer.Open()
	if err != nil {
		return nil, err
	}
	s, err := jp.inner.Open()
	if err != nil {
		outer.Close()
		return nil, err
	}
	inner, ok := s.(scan.ResettableScan)
	if !ok {
		outer.Close()
		s.Close()
		return nil, errors.Annotatef(scan.ErrNotResettable, "join inner %T", s)
	}
	js, err := query.NewNestedLoopJoinScan(outer, inner, jp.cond, jp.numPages)
	if err != nil {
		outer.Close()
		inner.Close()
		return nil, err
	}
	return js, nil
}

// Condition returns the join condition.
func (jp *JoinPlan) Condition() query.Condition {
	return jp.cond
}

// NumPages returns the memory budget handed to the join scan.
func (jp *JoinPlan) NumPages() int {
	return jp.numPages
}

// BlocksAccessed uses nested loop cost model: outer.blocks + (outer.records * inner.blocks).
func (jp *JoinPlan) BlocksAccessed() int {
	return jp.outer.BlocksAccessed() + (jp.outer.RecordsOutput() * jp.inner.BlocksAccessed())
}

// RecordsOutput returns the product size divided by the condition's
// reduction factor.
func (jp *JoinPlan) RecordsOutput() int {
	factor, err := jp.cond.ReductionFactor(jp.outer, jp.inner)
	if err != nil {
		slog.Debug("[PLAN] reduction factor unavailable", "condition", jp.cond.String(), "error", err)
		factor = 1
	}
	return jp.outer.RecordsOutput() * jp.inner.RecordsOutput() / factor
}

// DistinctValues delegates to whichever underlying plan contains the field.
func (jp *JoinPlan) DistinctValues(fldname string) (int, error) {
	if jp.outer.Schema().HasField(fldname) {
		return jp.outer.DistinctValues(fldname)
	}
	return jp.inner.DistinctValues(fldname)
}

// Schema returns the combined schema of both plans.
func (jp *JoinPlan) Schema() *record.Schema {
	return jp.schema
}
