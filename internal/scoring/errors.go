package scoring

import "errors"

// ErrMissingAxis is returned when a required axis result is absent from
// the input map. The wrapping error names the axis.
var ErrMissingAxis = errors.New("scoring: missing axis result")
