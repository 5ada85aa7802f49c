package table

import (
	"io"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/yashagw/craneqe/internal/record"
)

// StatInfo holds statistical information about a table.
type StatInfo struct {
	numBlocks    int
	numRecs      int
	distinctVals map[string]int
	table        *Table
}

// NewStatInfo captures the current size of t. Distinct value counts are
// computed lazily.
func NewStatInfo(t *Table) *StatInfo {
	blocks := int((t.Size() + record.PageSize - 1) / record.PageSize)
	return &StatInfo{
		numBlocks:    blocks,
		numRecs:      t.Len(),
		distinctVals: make(map[string]int),
		table:        t,
	}
}

// BlocksAccessed returns the number of pages a full scan touches.
func (s *StatInfo) BlocksAccessed() int {
	return s.numBlocks
}

// RecordsOutput returns the number of records in the table.
func (s *StatInfo) RecordsOutput() int {
	return s.numRecs
}

// DistinctValues returns the number of distinct values of fieldName, or 0
// when the table has no such field. Values are counted by hash.
func (s *StatInfo) DistinctValues(fieldName string) (int, error) {
	if cached, ok := s.distinctVals[fieldName]; ok {
		return cached, nil
	}
	n, err := s.calculateDistinctValues(fieldName)
	if err != nil {
		return 0, err
	}
	s.distinctVals[fieldName] = n
	return n, nil
}

func (s *StatInfo) calculateDistinctValues(fieldName string) (int, error) {
	schema := s.table.Schema()
	if s.numRecs == 0 || !schema.HasField(fieldName) {
		return 0, nil
	}

	layout := record.NewLayoutFromSchema(schema)
	seen := mapset.NewThreadUnsafeSet[uint32]()
	ts := s.table.Open()
	defer ts.Close()

	buf := make([]byte, record.PageSize)
	for {
		err := ts.Next(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		f, _, err := layout.FieldOffset(buf, fieldName)
		if err != nil {
			return 0, err
		}
		seen.Add(f.Value(buf).Hash())
	}
	return seen.Cardinality(), nil
}
