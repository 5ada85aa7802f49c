package query

import (
	"io"
	"log/slog"

	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

var (
	_ scan.ResettableScan = (*NestedLoopJoinScan)(nil)
)

type joinState int

const (
	// needOuter: the next call must advance the outer scan.
	needOuter joinState = iota
	// scanningInner: an outer tuple is held and the inner scan is advancing.
	scanningInner
	// exhausted: the outer scan hit EOF; the join is over.
	exhausted
)

// NestedLoopJoinScan joins every outer tuple with every inner tuple that
// satisfies the condition. The inner scan is rewound once per outer tuple.
// Output tuples are the outer tuple followed by the inner tuple, ordered by
// outer position and then inner position.
//
// An error from either input is kept and returned by every later Next until
// BeforeFirst. A matched pair that does not fit the output buffer stays
// pending and is written by the next call.
//
// The condition's left-hand side names an outer attribute. A right-hand
// attribute is looked up in the inner tuple and bound as a literal before
// the condition is evaluated against the outer tuple.
type NestedLoopJoinScan struct {
	outer     scan.Scan
	inner     scan.ResettableScan
	condition Condition
	numPages  int

	schema      *record.Schema
	outerLayout *record.Layout
	innerLayout *record.Layout
	evaluator   *Evaluator

	outerTuple []byte
	outerSize  int
	innerTuple []byte
	state      joinState
	pending    bool
	err        error
}

// NewNestedLoopJoinScan creates the join and rewinds the inner scan.
// numPages is the memory budget for a future block nested-loop variant;
// tuples are still joined one pair at a time.
func NewNestedLoopJoinScan(outer scan.Scan, inner scan.ResettableScan, condition Condition, numPages int) (*NestedLoopJoinScan, error) {
	outerSchema := outer.Schema()
	innerSchema := inner.Schema()

	schema := record.NewSchema()
	schema.CopyAll(outerSchema)
	schema.CopyAll(innerSchema)

	if shared := outerSchema.NameSet().Intersect(innerSchema.NameSet()); shared.Cardinality() > 0 {
		slog.Debug("[JOIN] outer and inner share field names", "fields", shared.ToSlice())
	}

	if err := inner.BeforeFirst(); err != nil {
		return nil, err
	}

	slog.Debug("[JOIN] nested loop join opened", "condition", condition.String(), "num_pages", numPages)
	return &NestedLoopJoinScan{
		outer:       outer,
		inner:       inner,
		condition:   condition,
		numPages:    numPages,
		schema:      schema,
		outerLayout: record.NewLayoutFromSchema(outerSchema),
		innerLayout: record.NewLayoutFromSchema(innerSchema),
		evaluator:   NewEvaluator(outerSchema),
		outerTuple:  make([]byte, record.PageSize),
		innerTuple:  make([]byte, record.PageSize),
		state:       needOuter,
	}, nil
}

// Next writes the next joined tuple into out.
func (s *NestedLoopJoinScan) Next(out []byte) error {
	if s.outerTuple == nil {
		return scan.ErrClosed
	}
	if s.err != nil {
		return s.err
	}
	for {
		switch s.state {
		case exhausted:
			return io.EOF

		case needOuter:
			err := s.outer.Next(s.outerTuple)
			if err == io.EOF {
				s.state = exhausted
				return io.EOF
			}
			if err != nil {
				return s.fail(err)
			}
			if s.outerSize, err = s.outerLayout.RecordSize(s.outerTuple); err != nil {
				return s.fail(err)
			}
			s.state = scanningInner

		case scanningInner:
			if !s.pending {
				err := s.inner.Next(s.innerTuple)
				if err == io.EOF {
					if err := s.inner.BeforeFirst(); err != nil {
						return s.fail(err)
					}
					s.state = needOuter
					continue
				}
				if err != nil {
					return s.fail(err)
				}
				ok, err := s.matches()
				if err != nil {
					return s.fail(err)
				}
				if !ok {
					continue
				}
				s.pending = true
			}
			if err := s.writeJoined(out); err != nil {
				return err
			}
			s.pending = false
			return nil
		}
	}
}

func (s *NestedLoopJoinScan) fail(err error) error {
	s.err = err
	slog.Debug("[JOIN] input failed", "error", err)
	return err
}

// matches evaluates the condition for the current pair.
func (s *NestedLoopJoinScan) matches() (bool, error) {
	cond := s.condition
	if cond.RhsIsAttr {
		f, ok, err := s.innerLayout.FieldOffset(s.innerTuple, cond.RhsAttr)
		if err != nil || !ok {
			return false, err
		}
		cond = cond.Bind(f.Value(s.innerTuple))
	}
	return s.evaluator.IsSatisfied(s.outerTuple, cond)
}

func (s *NestedLoopJoinScan) writeJoined(out []byte) error {
	innerSize, err := s.innerLayout.RecordSize(s.innerTuple)
	if err != nil {
		return err
	}
	w := record.NewWriter(out)
	if err := w.Write(s.outerTuple[:s.outerSize]); err != nil {
		return err
	}
	return w.Write(s.innerTuple[:innerSize])
}

func (s *NestedLoopJoinScan) Schema() *record.Schema {
	return s.schema
}

// NumPages returns the memory budget the join was created with.
func (s *NestedLoopJoinScan) NumPages() int {
	return s.numPages
}

// BeforeFirst restarts the join from the first outer tuple. The outer scan
// must be resettable.
func (s *NestedLoopJoinScan) BeforeFirst() error {
	if s.outerTuple == nil {
		return scan.ErrClosed
	}
	outer, ok := s.outer.(scan.ResettableScan)
	if !ok {
		return scan.ErrNotResettable
	}
	if err := outer.BeforeFirst(); err != nil {
		return err
	}
	if err := s.inner.BeforeFirst(); err != nil {
		return err
	}
	s.state = needOuter
	s.pending = false
	s.err = nil
	return nil
}

func (s *NestedLoopJoinScan) Close() {
	if s.outerTuple == nil {
		return
	}
	s.outerTuple = nil
	s.innerTuple = nil
	s.state = exhausted
	s.outer.Close()
	s.inner.Close()
}
