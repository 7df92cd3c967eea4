//go:build rp2040

package main

import (
	"errors"
	"machine"
)

var errUSBStalled = errors.New("usb: write made no progress")

// InitUSB initializes USB serial communication
// TinyGo sets up USB CDC-ACM on RP2040; machine.Serial is the CDC endpoint
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// USBWriteBytes writes multiple bytes to USB
func USBWriteBytes(data []byte) (int, error) {
	return machine.Serial.Write(data)
}

// usbLink is the frame output. Write pushes the whole frame, handling
// partial writes, and gives up on the first error or stalled write.
type usbLink struct{}

func (usbLink) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := USBWriteBytes(p[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			// No progress - likely disconnect
			return written, errUSBStalled
		}
	}
	return written, nil
}
