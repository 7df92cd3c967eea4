//go:build rp2040

package main

import "machine"

// Sensor wiring
const (
	pinRead  = machine.GPIO0 // READ: frame-start edge, sequencer jmp pin
	pinReset = machine.GPIO1 // XRST
	pinClock = machine.GPIO2 // XCK, side-set base
	pinLoad  = machine.GPIO3 // LOAD
	pinStart = machine.GPIO4 // START
	pinData  = machine.GPIO5 // SIN
	pinVout  = machine.ADC0  // VOUT on GP26

	pinLED = machine.LED

	// Debug UART1, clear of the sensor pins
	pinDebugTX = machine.GPIO8
	pinDebugRX = machine.GPIO9
)

// adcInput is the ADC channel wired to VOUT
const adcInput = 0
