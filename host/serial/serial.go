package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory ports (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// Read timeout in milliseconds (0 = blocking). Timed-out reads are
	// reported as idle, not as end of stream.
	ReadTimeout int
}

// DefaultConfig returns the configuration for the camera's USB CDC port
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 500,
	}
}

// IdleReader reports a read that timed out with no data as (0, nil), so
// frame readers keep waiting across long exposures. tarm/serial returns
// io.EOF for an empty timed-out read.
func IdleReader(r io.Reader) io.Reader {
	return idleReader{r: r}
}

type idleReader struct {
	r io.Reader
}

func (i idleReader) Read(b []byte) (int, error) {
	n, err := i.r.Read(b)
	if n == 0 && err == io.EOF {
		return 0, nil
	}
	return n, err
}
