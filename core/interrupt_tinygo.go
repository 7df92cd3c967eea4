//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts on the calling core, keeping the
// frame-start handler out of critical sections, and returns the previous mask
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the saved interrupt mask
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
