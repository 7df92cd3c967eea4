//go:build !wasm

package serial

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// USB identity of the camera
const (
	ProductName = "Pico - Board CDC"
	VendorID    = "2E8A"
	ProductID   = "000A"
)

// ErrNoDevice is returned when no attached port looks like the camera
var ErrNoDevice = errors.New("serial: no camera found")

// Detect returns the device path of the first attached camera
func Detect() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	if name, ok := matchPort(ports); ok {
		return name, nil
	}
	return "", ErrNoDevice
}

// matchPort prefers an exact product string match, then falls back to VID:PID
func matchPort(ports []*enumerator.PortDetails) (string, bool) {
	for _, port := range ports {
		if port.IsUSB && port.Product == ProductName {
			return port.Name, true
		}
	}
	for _, port := range ports {
		if port.IsUSB && strings.EqualFold(port.VID, VendorID) && strings.EqualFold(port.PID, ProductID) {
			return port.Name, true
		}
	}
	return "", false
}
