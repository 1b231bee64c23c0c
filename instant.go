package suspendtime

import (
	"fmt"
	"math"
	"time"
)

// nanosPerSecond is the number of nanoseconds in one second.
const nanosPerSecond = 1_000_000_000

// Instant is a point on the suspend-excluding monotonic timeline.
//
// An Instant can only be obtained from Now(); there is no way to construct
// one for an arbitrary point, and no way to relate one to wall-clock time.
// Instants are immutable values and are freely copied and compared.
//
// Internal invariant: 0 <= nanos < nanosPerSecond for every value that
// escapes this package. Raw clock readings that violate it are normalized
// to 0 rather than propagated.
//
// The representation is a fixed-point (seconds, subsecond-nanoseconds) pair
// rather than a single nanosecond count so that the clock's range is not
// bounded by time.Duration's ~292 years. All arithmetic saturates: no
// operation on an Instant can panic, wrap around, or produce a value outside
// the representable range.
type Instant struct {
	secs  uint64
	nanos uint32
}

// Now returns the current instant on the suspend-excluding clock.
//
// The raw platform reading is not trusted: negative fields are floored to
// zero and an out-of-range nanosecond field is forced to zero, so the
// package invariant holds no matter what the platform source reports.
func Now() Instant {
	sec, nsec := clockSource()
	if sec < 0 {
		sec, nsec = 0, 0
	}
	if nsec < 0 || nsec >= nanosPerSecond {
		nsec = 0
	}
	return Instant{secs: uint64(sec), nanos: uint32(nsec)}
}

// Elapsed returns how much unsuspended time has passed since this instant
// was captured, or zero if the instant is in the future.
func (i Instant) Elapsed() time.Duration {
	return Now().Sub(i)
}

// Sub returns the time elapsed from earlier to i.
//
// If earlier is after i, the result is 0, never negative. If the true
// difference exceeds what time.Duration can represent, the result is capped
// at the maximum representable duration.
func (i Instant) Sub(earlier Instant) time.Duration {
	if earlier.After(i) {
		return 0
	}
	// earlier <= i from here on, so the subtractions cannot underflow.
	secs := i.secs - earlier.secs
	var nanos uint32
	if earlier.nanos > i.nanos {
		secs--
		nanos = nanosPerSecond + i.nanos - earlier.nanos
	} else {
		nanos = i.nanos - earlier.nanos
	}
	return durationFromParts(secs, nanos)
}

// Add returns the instant shifted by d, which may be negative.
//
// Shifting past either end of the representable range saturates to the zero
// instant: below the epoch when d is negative, past the 2^64-second ceiling
// when d is positive.
func (i Instant) Add(d time.Duration) Instant {
	if d < 0 {
		return i.subParts(splitDuration(-d))
	}
	return i.addParts(splitDuration(d))
}

// addParts adds a non-negative (secs, nanos) pair, saturating to the zero
// instant on overflow.
func (i Instant) addParts(secs uint64, nanos uint32) Instant {
	if i.secs > math.MaxUint64-secs {
		return Instant{}
	}
	// 0 or 1: both fields are below nanosPerSecond.
	carry := uint64((i.nanos + nanos) / nanosPerSecond)
	if i.secs+secs > math.MaxUint64-carry {
		// The nanosecond carry alone pushed the sum past the ceiling.
		return Instant{}
	}
	return Instant{
		secs:  i.secs + secs + carry,
		nanos: (i.nanos + nanos) % nanosPerSecond,
	}
}

// subParts subtracts a non-negative (secs, nanos) pair, saturating to the
// zero instant on underflow.
func (i Instant) subParts(secs uint64, nanos uint32) Instant {
	if secs > i.secs {
		return Instant{}
	}
	if nanos > i.nanos {
		// Borrowing a second is only impossible when there is no second
		// left to borrow, i.e. the seconds are already equal.
		if i.secs == secs {
			return Instant{}
		}
		return Instant{
			secs:  i.secs - secs - 1,
			nanos: nanosPerSecond + i.nanos - nanos,
		}
	}
	return Instant{
		secs:  i.secs - secs,
		nanos: i.nanos - nanos,
	}
}

// Before reports whether i is earlier than other.
func (i Instant) Before(other Instant) bool {
	return i.Compare(other) < 0
}

// After reports whether i is later than other.
func (i Instant) After(other Instant) bool {
	return i.Compare(other) > 0
}

// Equal reports whether i and other are the same instant.
// Plain == is equivalent; Equal exists to mirror time.Time's method set.
func (i Instant) Equal(other Instant) bool {
	return i == other
}

// Compare orders two instants lexicographically on (seconds, nanoseconds).
// It returns -1 if i is before other, 0 if equal, +1 if after.
func (i Instant) Compare(other Instant) int {
	switch {
	case i.secs < other.secs:
		return -1
	case i.secs > other.secs:
		return 1
	case i.nanos < other.nanos:
		return -1
	case i.nanos > other.nanos:
		return 1
	default:
		return 0
	}
}

// String renders the instant as seconds since the clock's epoch, for logs
// and debugging only. The epoch is arbitrary (typically boot), so the value
// has no meaning outside this process.
func (i Instant) String() string {
	return fmt.Sprintf("%d.%09ds", i.secs, i.nanos)
}

// splitDuration decomposes a non-negative duration into whole seconds and
// subsecond nanoseconds. The caller is responsible for the sign; note that
// -d is non-negative for every negative d including math.MinInt64, whose
// negation wraps to itself but converts to the correct uint64 magnitude.
func splitDuration(d time.Duration) (secs uint64, nanos uint32) {
	n := uint64(d)
	return n / nanosPerSecond, uint32(n % nanosPerSecond)
}

// durationFromParts converts a (secs, nanos) pair to a time.Duration,
// capping at math.MaxInt64 nanoseconds when the pair does not fit.
func durationFromParts(secs uint64, nanos uint32) time.Duration {
	const maxSecs = math.MaxInt64 / nanosPerSecond
	const maxRem = math.MaxInt64 % nanosPerSecond
	if secs > maxSecs || (secs == maxSecs && uint64(nanos) > maxRem) {
		return math.MaxInt64
	}
	return time.Duration(secs*nanosPerSecond + uint64(nanos))
}
