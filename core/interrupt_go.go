//go:build !tinygo

package core

import "sync"

// State stands in for the saved interrupt mask on regular Go
type State uintptr

// interruptMask serialises the sections the device runs with interrupts
// masked, so host tests can drive both contexts from goroutines
var interruptMask sync.Mutex

// disableInterrupts takes the mask lock on regular Go
func disableInterrupts() State {
	interruptMask.Lock()
	return 0
}

// restoreInterrupts releases the mask lock
func restoreInterrupts(state State) {
	interruptMask.Unlock()
}
