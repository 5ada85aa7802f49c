package record

import (
	"fmt"
	"strings"

	"github.com/pingcap/errors"
)

// CompOp is a binary comparison operator.
type CompOp int

const (
	EQ CompOp = iota
	LT
	GT
	LE
	GE
	NE
	// NONE matches every pair of operands of the same type.
	NONE
)

func (op CompOp) String() string {
	switch op {
	case EQ:
		return "="
	case LT:
		return "<"
	case GT:
		return ">"
	case LE:
		return "<="
	case GE:
		return ">="
	case NE:
		return "!="
	case NONE:
		return "none"
	}
	return fmt.Sprintf("CompOp(%d)", int(op))
}

// ParseCompOp maps an operator token to its CompOp.
func ParseCompOp(s string) (CompOp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "=", "==", "eq":
		return EQ, nil
	case "<", "lt":
		return LT, nil
	case ">", "gt":
		return GT, nil
	case "<=", "le":
		return LE, nil
	case ">=", "ge":
		return GE, nil
	case "!=", "<>", "ne":
		return NE, nil
	case "", "none":
		return NONE, nil
	}
	return 0, errors.Errorf("unknown comparison operator %q", s)
}
