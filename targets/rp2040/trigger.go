//go:build rp2040

package main

import (
	"gbcam/core"
	"machine"
)

// ledIndicator toggles an LED once per frame
type ledIndicator struct {
	pin machine.Pin
}

func newLEDIndicator(pin machine.Pin) ledIndicator {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return ledIndicator{pin: pin}
}

func (l ledIndicator) Toggle() {
	l.pin.Set(!l.pin.Get())
}

// initFrameTrigger routes the rising READ edge to the camera's edge handler.
// The sequencer reads the same pin through its jmp pin.
func initFrameTrigger(cam *core.Camera) error {
	// Pulled down so a floating READ line cannot start frames
	pinRead.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return pinRead.SetInterrupt(machine.PinRising, func(machine.Pin) {
		cam.OnFrameStart()
	})
}
