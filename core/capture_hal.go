package core

// ShiftClock is the fixed-function sequencer that drives the sensor clock and
// shifts the load words out on the data line.
// Platform-specific implementations handle actual hardware control.
type ShiftClock interface {
	// SetDivider applies a sequencer clock divider
	SetDivider(div ClockDivider)

	// Load restarts the sequencer, queues the load words and enables clocking.
	// The sequencer consumes the words once, then keeps emitting the clock.
	Load(words LoadWords)
}

// Sampler is the analog front-end together with its memory transfer channel.
type Sampler interface {
	// SetDivider applies the sampler clock divider, selects the fixed input
	// channel and disables the temperature sensor and round-robin scanning
	SetDivider(div ClockDivider)

	// Arm programs the transfer: one byte per sample into dst, len(dst) beats.
	// It enables the transfer but does not start sampling.
	Arm(dst []byte)

	// Run enables or disables free-running sampling
	Run(on bool)

	// Abort stops sampling and cancels the in-flight transfer
	Abort()
}

// Indicator is a visible status output toggled once per frame
type Indicator interface {
	Toggle()
}

// ByteSource is the receive side of the host link.
// machine.Serial and protocol.FifoBuffer both satisfy it.
type ByteSource interface {
	// Buffered returns the number of bytes ready to read
	Buffered() int

	// ReadByte pops one byte
	ReadByte() (byte, error)
}
