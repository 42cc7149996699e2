package imaging

import "errors"

// ErrInvalidParameter reports a caller-supplied parameter that failed
// validation. Validation always happens before any pixel is processed, so an
// operation that returns this error has had no observable effect.
var ErrInvalidParameter = errors.New("invalid parameter")
