//go:build rp2040

package main

// Sensor Clock Sweep - Cycles the sequencer through XCK targets
// Watch GP2 (XCK), GP3 (LOAD) and GP5 (SIN) on an oscilloscope.
// Tie GP0 (READ) low to keep the sequencer in the exposure loop.

import (
	"gbcam/core"
	piosensor "gbcam/targets/pio"
	"machine"
	"time"
)

// Sweep targets for the sensor clock
var clockTests = []struct {
	hz   uint32
	name string
}{
	{10000, "Slow (10 kHz)"},
	{core.SensorClockHz, "Default (37.5 kHz)"},
	{100000, "Fast (100 kHz)"},
	{250000, "Very Fast (250 kHz)"},
	//{500000, "Max rated (500 kHz)"},
}

func main() {
	time.Sleep(3 * time.Second)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Flash LED to indicate start
	for i := 0; i < 3; i++ {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}

	println("=== Sensor Clock Sweep ===")
	println("XCK: GP2, LOAD: GP3, START: GP4, SIN: GP5")

	piosensor.ResetPIOAllocations()
	sequencer, err := piosensor.AllocateSequencer()
	if err != nil {
		println("Allocate error:", err.Error())
		return
	}
	status := piosensor.GetPIOAllocationStatus()
	println("PIO0 claims:", status[0][0], status[0][1], status[0][2], status[0][3])
	err = sequencer.Init(piosensor.SensorPins{
		Read:  machine.GPIO0,
		Reset: machine.GPIO1,
		Clock: machine.GPIO2,
		Data:  machine.GPIO5,
	})
	if err != nil {
		println("Init error:", err.Error())
		for {
			led.High()
			time.Sleep(100 * time.Millisecond)
			led.Low()
			time.Sleep(100 * time.Millisecond)
		}
	}
	println("Init OK!")

	words := core.Pack(core.DefaultRegisters.Raw())
	println("Load words:", words.String())

	cycle := 0
	for {
		cycle++
		println("\n=== Cycle", cycle, "===")

		for _, test := range clockTests {
			sequencer.SetDivider(core.SequencerDivider(test.hz))

			// Reload so the register burst is visible at each speed
			sequencer.Load(words)
			div := sequencer.Divider()
			achieved := div.Hz(core.MasterClockHz) / core.SensorClockMultiplier
			println("Clock:", test.name, "- Divider:", div.Int, "+", div.Frac, "/256 -", achieved, "Hz")

			led.High()
			time.Sleep(3 * time.Second)
			led.Low()

			println("  (changing speed...)")
			sequencer.Stop()
			time.Sleep(500 * time.Millisecond)
		}

		println("\n--- Restarting cycle ---")
		time.Sleep(1 * time.Second)
	}
}
