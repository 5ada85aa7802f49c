package plan

import (
	"log/slog"

	"github.com/yashagw/craneqe/internal/query"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

var (
	_ Plan = (*FilterPlan)(nil)
)

// FilterPlan is the Plan for a selection.
type FilterPlan struct {
	p    Plan
	cond query.Condition
}

func NewFilterPlan(p Plan, cond query.Condition) *FilterPlan {
	return &FilterPlan{
		p:    p,
		cond: cond,
	}
}

func (fp *FilterPlan) Open() (scan.Scan, error) {
	s, err := fp.p.Open()
	if err != nil {
		return nil, err
	}
	return query.NewFilterScan(s, fp.cond), nil
}

// Condition returns the filter condition.
func (fp *FilterPlan) Condition() query.Condition {
	return fp.cond
}

// BlocksAccessed returns the same as the underlying plan (filtering doesn't change block access).
func (fp *FilterPlan) BlocksAccessed() int {
	return fp.p.BlocksAccessed()
}

// RecordsOutput estimates output records as input records / reduction factor.
func (fp *FilterPlan) RecordsOutput() int {
	factor, err := fp.cond.ReductionFactor(fp.p, fp.p)
	if err != nil {
		slog.Debug("[PLAN] reduction factor unavailable", "condition", fp.cond.String(), "error", err)
		factor = 1
	}
	return fp.p.RecordsOutput() / factor
}

// DistinctValues returns:
// - 1 if the field is equated with a constant
// - min of both fields if equated with another field
// - underlying plan's value otherwise
func (fp *FilterPlan) DistinctValues(fldname string) (int, error) {
	if _, ok := fp.cond.EquatesWithConstant(fldname); ok {
		return 1, nil
	}

	if other, ok := fp.cond.EquatesWithField(fldname); ok {
		n1, err := fp.p.DistinctValues(fldname)
		if err != nil {
			return 0, err
		}
		n2, err := fp.p.DistinctValues(other)
		if err != nil {
			return 0, err
		}
		return min(n1, n2), nil
	}

	return fp.p.DistinctValues(fldname)
}

func (fp *FilterPlan) Schema() *record.Schema {
	return fp.p.Schema()
}
