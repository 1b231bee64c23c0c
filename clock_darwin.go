package suspendtime

import "golang.org/x/sys/unix"

// readClock reads CLOCK_UPTIME_RAW, the Darwin clock that increments like
// CLOCK_MONOTONIC_RAW but does not increment while the system is asleep.
// The reading is identical to mach_absolute_time() after the mach timebase
// conversion.
func readClock() (sec, nsec int64) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_UPTIME_RAW, &ts); err != nil {
		return 0, 0
	}
	return ts.Unix()
}
