package record

import "github.com/pingcap/errors"

// ErrContractViolation is the cause of every error raised when a tuple
// buffer does not hold what its schema claims, or when an output buffer is
// too small for the tuple being written into it. Match it with
// errors.Cause.
var ErrContractViolation = errors.New("tuple buffer contract violation")

func violation(format string, args ...interface{}) error {
	return errors.Annotatef(ErrContractViolation, format, args...)
}

// IsContractViolation reports whether err was caused by ErrContractViolation.
func IsContractViolation(err error) bool {
	return err != nil && errors.Cause(err) == ErrContractViolation
}
