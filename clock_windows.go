package suspendtime

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// QueryUnbiasedInterruptTimePrecise returns the interrupt time in 100 ns
// units since boot, excluding time the system spent suspended or
// hibernating. The Precise variant reads the timer hardware directly, which
// is slower than QueryUnbiasedInterruptTime but not quantized to the timer
// tick.
var (
	kernelbase                            = windows.NewLazySystemDLL("kernelbase.dll")
	procQueryUnbiasedInterruptTimePrecise = kernelbase.NewProc("QueryUnbiasedInterruptTimePrecise")
)

const interruptIntervalNanos = 100

func readClock() (sec, nsec int64) {
	var intervals uint64
	// The call only fails if the pointer is invalid; r1 == 0 with a valid
	// pointer does not happen on supported Windows versions.
	r1, _, _ := procQueryUnbiasedInterruptTimePrecise.Call(
		uintptr(unsafe.Pointer(&intervals)),
	)
	if r1 == 0 {
		return 0, 0
	}
	nanos := intervals * interruptIntervalNanos
	return int64(nanos / nanosPerSecond), int64(nanos % nanosPerSecond)
}
