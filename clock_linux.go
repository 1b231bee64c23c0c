package suspendtime

import "golang.org/x/sys/unix"

// readClock reads CLOCK_MONOTONIC, which on Linux does not advance while
// the system is suspended. (CLOCK_BOOTTIME is the suspend-inclusive
// variant; CLOCK_MONOTONIC_RAW would also work but skips NTP frequency
// correction, which we want to keep.)
func readClock() (sec, nsec int64) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// clock_gettime cannot fail for a valid clock id on a valid
		// pointer; treat a failure like a zero reading and let Now()
		// clamp it.
		return 0, 0
	}
	return ts.Unix()
}
