package segint

import (
	"github.com/pkg/errors"
)

// ErrInvalidInput is returned for segments with non-finite coordinates. Nothing is swept in that case.
var ErrInvalidInput = errors.New("invalid input")

// ErrPrecondition is wrapped by the panics raised when an invariant of the sweep status is violated. It
// signals a logic error and is not recoverable.
var ErrPrecondition = errors.New("sweep precondition violated")

func preconditionf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrPrecondition, format, args...)
}

// Validate returns an error wrapping ErrInvalidInput for the first segment with a non-finite coordinate.
func Validate(segs []Segment) error {
	for i, s := range segs {
		if !s.Start.IsFinite() || !s.End.IsFinite() {
			return errors.Wrapf(ErrInvalidInput, "segment %d %v has a non-finite coordinate", i, s)
		}
	}
	return nil
}
