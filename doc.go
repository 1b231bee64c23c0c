// Package suspendtime provides a monotonic clock that excludes time spent
// while the host machine is suspended, and sleep/timeout primitives measured
// against that clock.
//
// MOTIVATION:
//
// Platform monotonic clocks disagree about system suspend. On Linux,
// CLOCK_MONOTONIC stops while the machine sleeps; on Windows, the interrupt
// time keeps running; on Darwin it depends on which clock you ask. The Go
// runtime's monotonic reading (the one behind time.Since and time.Timer)
// inherits whichever behavior the platform happens to have. Code that wants
// "10 minutes of the machine actually running" therefore cannot use the
// standard clock portably.
//
// In this package, time never passes while the system is suspended, on every
// supported platform.
//
// DESIGN:
//
// Instant is an opaque point on the suspend-excluding timeline. It can only
// be obtained from Now(), so a caller can never fabricate an instant that the
// clock did not produce. All arithmetic on Instant saturates instead of
// wrapping, panicking, or returning errors:
//   - subtracting a later instant from an earlier one yields 0
//   - subtracting a duration below the epoch yields the zero instant
//   - adding a duration past the representable range yields the zero instant
//
// Sleep and Timeout are built on Instant plus the runtime's own (possibly
// suspend-unaware) timers. Sleep re-arms its timer in a loop and only returns
// once the suspend-excluding clock itself confirms the deadline, so a timer
// that counts suspended time as elapsed time cannot cause an early return.
//
// PLATFORM SOURCES:
//
//	linux    clock_gettime(CLOCK_MONOTONIC)
//	darwin   clock_gettime(CLOCK_UPTIME_RAW)
//	windows  QueryUnbiasedInterruptTimePrecise
//
// Other platforms fail at build time: there is deliberately no fallback to a
// suspend-aware clock, since silently measuring the wrong timeline is worse
// than not compiling.
package suspendtime
