package schema

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// InvalidArgument builds an error for a violated input precondition,
// such as a non-positive smoothing window.
func InvalidArgument(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

// OutOfRange builds an error for a frame or row index outside the table.
func OutOfRange(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeOutOfRange).
		WithMsg(msg)
}

// IsInvalidArgument reports whether err carries the InvalidArgument code.
func IsInvalidArgument(err error) bool {
	var eb *errbuilder.ErrBuilder
	return errors.As(err, &eb) && eb.ErrCode() == errbuilder.CodeInvalidArgument
}

// IsOutOfRange reports whether err carries the OutOfRange code.
func IsOutOfRange(err error) bool {
	var eb *errbuilder.ErrBuilder
	return errors.As(err, &eb) && eb.ErrCode() == errbuilder.CodeOutOfRange
}
