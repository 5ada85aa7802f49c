package query

import (
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

var (
	_ scan.ResettableScan = (*FilterScan)(nil)
)

// FilterScan passes through the input tuples that satisfy a condition, in
// input order and unchanged.
type FilterScan struct {
	input     scan.Scan
	condition Condition
	schema    *record.Schema
	evaluator *Evaluator
	closed    bool
}

func NewFilterScan(input scan.Scan, condition Condition) *FilterScan {
	schema := input.Schema()
	return &FilterScan{
		input:     input,
		condition: condition,
		schema:    schema,
		evaluator: NewEvaluator(schema),
	}
}

// Next pulls input tuples into out until one satisfies the condition.
// Errors and io.EOF from the input are returned as is.
func (s *FilterScan) Next(out []byte) error {
	if s.closed {
		return scan.ErrClosed
	}
	for {
		if err := s.input.Next(out); err != nil {
			return err
		}
		ok, err := s.evaluator.IsSatisfied(out, s.condition)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}

func (s *FilterScan) Schema() *record.Schema {
	return s.schema
}

// Condition returns the filter condition.
func (s *FilterScan) Condition() Condition {
	return s.condition
}

func (s *FilterScan) BeforeFirst() error {
	input, ok := s.input.(scan.ResettableScan)
	if !ok {
		return scan.ErrNotResettable
	}
	return input.BeforeFirst()
}

func (s *FilterScan) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.input.Close()
}
