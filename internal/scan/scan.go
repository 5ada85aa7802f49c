package scan

import (
	"io"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
)

// ErrClosed is returned by Next on a scan that has been closed.
var ErrClosed = errors.New("scan is closed")

// ErrNotResettable is returned by BeforeFirst when the scan wraps an input
// that cannot be rewound.
var ErrNotResettable = errors.New("input scan cannot be reset")

// Scan is the pull interface shared by base relations and operators.
// A tuple written by Next is valid until the next call on the same scan;
// callers that keep it must copy it.
type Scan interface {
	// Next writes the next tuple into out. It returns io.EOF when the
	// stream is exhausted and a contract violation when out is too small
	// or the input is malformed.
	Next(out []byte) error
	// Schema returns the shape of the tuples produced by Next. It may be
	// called at any time and has no side effects.
	Schema() *record.Schema
	// Close releases the buffers held by the scan and closes its inputs.
	Close()
}

// ResettableScan is a scan that can be rewound to its first tuple, as the
// inner side of a nested-loop join requires.
type ResettableScan interface {
	Scan
	// BeforeFirst positions the scan before the first tuple.
	BeforeFirst() error
}

// Collect drains s and returns a copy of every tuple, each sized to its
// encoded length.
func Collect(s Scan) ([][]byte, error) {
	layout := record.NewLayoutFromSchema(s.Schema())
	buf := make([]byte, record.PageSize)
	var tuples [][]byte
	for {
		err := s.Next(buf)
		if err == io.EOF {
			return tuples, nil
		}
		if err != nil {
			return tuples, err
		}
		size, err := layout.RecordSize(buf)
		if err != nil {
			return tuples, err
		}
		tuple := make([]byte, size)
		copy(tuple, buf)
		tuples = append(tuples, tuple)
	}
}
