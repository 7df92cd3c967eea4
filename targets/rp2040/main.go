//go:build rp2040

package main

import (
	"context"
	"gbcam/core"
	"gbcam/protocol"
	piosensor "gbcam/targets/pio"
	"machine"
	"time"
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	led := newLEDIndicator(pinLED)

	// Initialize USB CDC immediately
	InitUSB()
	InitDebugUART()

	core.DebugPrintln("gbcam firmware " + protocol.Version)

	cfg := core.DefaultConfig()

	sequencer, err := piosensor.AllocateSequencer()
	if err != nil {
		fatal(led, nil, err)
	}
	err = sequencer.Init(piosensor.SensorPins{
		Read:  pinRead,
		Reset: pinReset,
		Clock: pinClock,
		Data:  pinData,
	})
	if err != nil {
		fatal(led, nil, err)
	}

	sampler, err := NewADCSampler()
	if err != nil {
		fatal(led, sequencer, err)
	}

	cam := core.NewCamera(cfg, sequencer, sampler, led, usbLink{})
	cam.Start()

	if err := initFrameTrigger(cam); err != nil {
		fatal(led, sequencer, err)
	}

	// Secondary context: stream frames as they complete
	go cam.Drainer().Run(context.Background())

	commands := core.NewInterpreter(machine.Serial, cam, cfg)

	// Primary context: command polling
	for {
		UpdateSystemTime()

		if !commands.Poll() {
			time.Sleep(1 * time.Millisecond)
		}
	}
}

// fatal stops the sensor clock, if running, and halts in a fast LED blink.
// Resource claims cannot be retried.
func fatal(led ledIndicator, sequencer *piosensor.SensorPIO, err error) {
	if sequencer != nil {
		sequencer.Stop()
	}
	core.DebugPrintln("fatal: " + err.Error())
	core.DumpEventRing()
	for {
		led.Toggle()
		time.Sleep(100 * time.Millisecond)
	}
}
