package plan

import (
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

var (
	_ Plan = (*ProjectPlan)(nil)
)

// ProjectPlan is the Plan for a projection.
type ProjectPlan struct {
	p         Plan
	fieldList []string
	schema    *record.Schema
}

// NewProjectPlan keeps the fields of fieldList that p produces, in
// fieldList order. Names may repeat.
func NewProjectPlan(p Plan, fieldList []string) *ProjectPlan {
	schema := record.NewSchema()
	for _, fldname := range fieldList {
		schema.Copy(p.Schema(), fldname)
	}
	return &ProjectPlan{
		p:         p,
		fieldList: fieldList,
		schema:    schema,
	}
}

func (pp *ProjectPlan) Open() (scan.Scan, error) {
	s, err := pp.p.Open()
	if err != nil {
		return nil, err
	}
	return scan.NewProjectScan(s, pp.fieldList), nil
}

// BlocksAccessed returns the same as the underlying plan (projection doesn't change block access).
func (pp *ProjectPlan) BlocksAccessed() int {
	return pp.p.BlocksAccessed()
}

// RecordsOutput returns the same as the underlying plan (projection doesn't filter rows).
func (pp *ProjectPlan) RecordsOutput() int {
	return pp.p.RecordsOutput()
}

// DistinctValues delegates to the underlying plan.
func (pp *ProjectPlan) DistinctValues(fldname string) (int, error) {
	return pp.p.DistinctValues(fldname)
}

// Schema returns the schema with only the projected fields.
func (pp *ProjectPlan) Schema() *record.Schema {
	return pp.schema
}
