package suspendtime

// clockSource is the injected suspend-excluding clock capability: a raw
// (seconds, nanoseconds) reading since an arbitrary fixed epoch. Exactly one
// platform file provides readClock; on an unsupported platform this
// assignment fails to compile, which is intentional: there is no clock this
// package could correctly fall back to.
//
// Tests substitute a manual clock here. Now() owns all normalization of the
// reading, so a source may return raw, even out-of-range, values.
var clockSource func() (sec, nsec int64) = readClock
