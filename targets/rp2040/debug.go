//go:build rp2040

package main

import (
	"gbcam/core"
	"machine"
)

// debugUARTEnabled routes core debug output to UART1.
// USB CDC carries frames, so debug never goes there.
const debugUARTEnabled = false

var debugUART *machine.UART

// InitDebugUART initializes UART1 on GPIO8 (TX) and GPIO9 (RX) for debugging
// Baud rate: 115200
func InitDebugUART() {
	if !debugUARTEnabled {
		return
	}
	debugUART = machine.UART1

	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       pinDebugTX,
		RX:       pinDebugRX,
	})
	if err != nil {
		debugUART = nil
		return
	}

	core.SetDebugWriter(debugPrintln)
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	core.DebugPrintln("=== RP2040 Debug UART Initialized ===")
	core.DebugPrintln("Baud: 115200, TX=GPIO8, RX=GPIO9")
}

// debugPrintln writes a string to the debug UART with newline
func debugPrintln(s string) {
	if debugUART == nil {
		return
	}
	debugUART.Write([]byte(s))
	debugUART.Write([]byte("\r\n"))
}
