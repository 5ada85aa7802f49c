package scan

import (
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/yashagw/craneqe/internal/record"
)

var (
	_ ResettableScan = (*ProjectScan)(nil)
)

// ProjectScan restricts and reorders the fields of its input. Requested
// names are resolved once, at construction, to the first matching input
// attribute; names the input does not have are dropped.
type ProjectScan struct {
	input     Scan
	schema    *record.Schema
	layout    *record.Layout
	positions []int
	tuple     []byte
	// held is set while a pulled input tuple has not been written out.
	held bool
}

func NewProjectScan(input Scan, fieldList []string) *ProjectScan {
	inputSchema := input.Schema()
	schema := record.NewSchema()
	positions := make([]int, 0, len(fieldList))
	missing := mapset.NewThreadUnsafeSet[string]()
	for _, fldname := range fieldList {
		_, pos, ok := inputSchema.Find(fldname)
		if !ok {
			missing.Add(fldname)
			continue
		}
		schema.Copy(inputSchema, fldname)
		positions = append(positions, pos)
	}
	if missing.Cardinality() > 0 {
		slog.Debug("[PROJECT] dropping fields missing from input", "fields", missing.ToSlice())
	}

	return &ProjectScan{
		input:     input,
		schema:    schema,
		layout:    record.NewLayoutFromSchema(inputSchema),
		positions: positions,
		tuple:     make([]byte, record.PageSize),
	}
}

// Next pulls one input tuple and writes the projected fields into out.
// Every input field is located in one walk, so requested fields may come
// in any order and may repeat. If out is too small the input tuple is kept
// and projected again by the next call.
func (s *ProjectScan) Next(out []byte) error {
	if s.tuple == nil {
		return ErrClosed
	}
	if !s.held {
		if err := s.input.Next(s.tuple); err != nil {
			return err
		}
		s.held = true
	}
	fields, err := s.layout.Fields(s.tuple)
	if err != nil {
		return err
	}
	w := record.NewWriter(out)
	for _, pos := range s.positions {
		if err := w.Write(fields[pos].Bytes(s.tuple)); err != nil {
			return err
		}
	}
	s.held = false
	return nil
}

func (s *ProjectScan) Schema() *record.Schema {
	return s.schema
}

// BeforeFirst rewinds the input, if it can be rewound.
func (s *ProjectScan) BeforeFirst() error {
	input, ok := s.input.(ResettableScan)
	if !ok {
		return ErrNotResettable
	}
	if err := input.BeforeFirst(); err != nil {
		return err
	}
	s.held = false
	return nil
}

func (s *ProjectScan) Close() {
	if s.tuple == nil {
		return
	}
	s.tuple = nil
	s.input.Close()
}
