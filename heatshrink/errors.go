package heatshrink

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors returned by Sink, Poll and Finish. Callers should compare
// against these with errors.Is rather than matching on message text.
var (
	// ErrNullInput is returned when an operation that requires a non-nil
	// buffer is given a nil one. A non-nil, zero-length slice is not an
	// error: it simply carries zero bytes of work.
	ErrNullInput = errors.New("heatshrink: nil buffer")

	// ErrMisuse is returned when an operation is called out of sequence,
	// e.g. Sink after Finish without an intervening Reset.
	ErrMisuse = errors.New("heatshrink: invalid call sequence")

	// ErrInternal marks a state the machine should be unable to reach by
	// construction. It is surfaced rather than silently corrupting output.
	ErrInternal = errors.New("heatshrink: internal invariant violated")
)

// internalf wraps ErrInternal with a stack trace captured at the point the
// invariant was found broken, so a report of this error is actionable
// instead of a bare "shouldn't happen".
func internalf(format string, args ...any) error {
	return pkgerrors.Wrapf(ErrInternal, format, args...)
}
