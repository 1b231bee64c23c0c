package suspendtime

import "errors"

// ErrTimedOut is returned by Timeout when its budget of suspend-excluding
// time elapses before the raced operation completes. It is the only error
// this package produces on its own; everything else it can return originates
// from a caller's context or operation.
var ErrTimedOut = errors.New("suspendtime: operation timed out")
