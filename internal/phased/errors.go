package phased

import "errors"

// Domain errors. Setters never produce errors (out-of-range values are
// clamped); only the by-name parameter surface can fail.
var (
	// ErrUnknownParam indicates a SetParam name that matches no attribute.
	ErrUnknownParam = errors.New("phased: unknown parameter")
)
