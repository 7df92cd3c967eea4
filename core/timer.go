package core

import "sync/atomic"

var systemTicks atomic.Uint32

// GetTime returns the current system time in microseconds
func GetTime() uint32 {
	return systemTicks.Load()
}

// SetTime sets the current system time. The target refreshes it from the
// hardware timer in its main loop; tests set it directly.
func SetTime(ticks uint32) {
	systemTicks.Store(ticks)
}
