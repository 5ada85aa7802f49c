package plan

import (
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
)

// Plan is a node of an operator tree. It opens the scan that executes the
// node and estimates the cost of doing so.
type Plan interface {
	// Open returns a scan which can be used to iterate over the plan's records.
	Open() (scan.Scan, error)
	// BlocksAccessed returns the estimated number of pages read by the operation.
	BlocksAccessed() int
	// RecordsOutput returns the estimated number of output records produced by this plan node.
	RecordsOutput() int
	// DistinctValues returns the estimated number of distinct values for a specified field in the output.
	DistinctValues(fldname string) (int, error)
	// Schema returns the schema of the output records produced by this plan node.
	Schema() *record.Schema
}
