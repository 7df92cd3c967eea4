package core

import "io"

// Camera is the acquisition context. It owns the register file, the derived
// load words and every stage of the capture pipeline. There is exactly one per
// device.
type Camera struct {
	cfg Config

	regs  *RegisterFile
	words LoadWords

	clock  *ClockGenerator
	acq    *Acquisition
	frames *FrameBuffers
	signal *FrameSignal

	trigger *FrameTrigger
	drainer *Drainer

	restarts uint32
}

// Stats is a snapshot of the pipeline counters
type Stats struct {
	Edges          uint32
	Published      uint32
	Dropped        uint32
	Reclaimed      uint32
	Sent           uint32
	Coalesced      uint32
	TransmitErrors uint32
	Restarts       uint32
}

// NewCamera builds the pipeline on top of the platform drivers. led may be nil.
func NewCamera(cfg Config, clock ShiftClock, sampler Sampler, led Indicator, out io.Writer) *Camera {
	applyDefaults(&cfg)

	c := &Camera{
		cfg:    cfg,
		regs:   NewRegisterFile(),
		clock:  NewClockGenerator(clock),
		acq:    NewAcquisition(sampler),
		frames: NewFrameBuffers(),
		signal: NewFrameSignal(),
	}
	c.trigger = NewFrameTrigger(c.frames, c.signal, c.acq, led)
	c.drainer = NewDrainer(c.frames, c.signal, out)
	return c
}

// Start runs the power-on sequence: pack the default registers, configure and
// arm the sampler, then start the sensor clock with the register load.
// Sampling starts on the first frame-start edge.
func (c *Camera) Start() {
	c.words = Pack(c.regs.Raw())

	c.acq.ConfigureSampling(c.cfg.SampleRateHz)
	c.acq.ArmCapture(c.frames.Active())

	c.clock.Configure(c.cfg.SensorClockHz)
	c.clock.LoadAndStart(c.words)

	DebugPrintln("camera: started, load words " + c.words.String())
}

// Restart applies the current register file. It aborts any transfer, re-arms
// the active buffer, reloads the sequencer and leaves sampling running.
// The edge handler is masked for the duration.
func (c *Camera) Restart() {
	state := disableInterrupts()

	c.acq.Abort()
	c.acq.ConfigureSampling(c.cfg.SampleRateHz)
	c.acq.ArmCapture(c.frames.Active())

	c.words = Pack(c.regs.Raw())
	c.clock.Configure(c.cfg.SensorClockHz)
	c.clock.LoadAndStart(c.words)

	_ = c.acq.StartSampling() // armed above, cannot fail
	c.restarts++

	restoreInterrupts(state)

	RecordEvent(EvtRestart, uint32(c.clock.Divider().Int), uint32(c.acq.Divider().Int))
}

// OnFrameStart is the frame-start edge handler
func (c *Camera) OnFrameStart() {
	c.trigger.OnEdge()
}

// PokeRegister overwrites one raw register byte. Offsets past the register
// file are rejected.
func (c *Camera) PokeRegister(offset, value byte) bool {
	return c.regs.Poke(offset, value)
}

// ResetRegisters restores the default register bytes. The sensor keeps its
// current configuration until the next restart.
func (c *Camera) ResetRegisters() {
	c.regs.Reset()
}

// Registers returns the decoded register file
func (c *Camera) Registers() Registers {
	return c.regs.Registers()
}

// RawRegisters returns the raw register bytes
func (c *Camera) RawRegisters() RawRegisters {
	return c.regs.Raw()
}

// LoadWords returns the words last shifted into the sensor
func (c *Camera) LoadWords() LoadWords {
	return c.words
}

// Drainer returns the transmit side, to be run in its own goroutine
func (c *Camera) Drainer() *Drainer {
	return c.drainer
}

// Acquisition returns the acquisition controller
func (c *Camera) Acquisition() *Acquisition {
	return c.acq
}

// Frames returns the frame buffers
func (c *Camera) Frames() *FrameBuffers {
	return c.frames
}

// Clock returns the sensor clock generator
func (c *Camera) Clock() *ClockGenerator {
	return c.clock
}

// Stats returns the pipeline counters
func (c *Camera) Stats() Stats {
	return Stats{
		Edges:          c.trigger.Edges(),
		Published:      c.frames.Published(),
		Dropped:        c.frames.Dropped(),
		Reclaimed:      c.frames.Reclaimed(),
		Sent:           c.drainer.Sent(),
		Coalesced:      c.drainer.Coalesced(),
		TransmitErrors: c.drainer.TransmitErrors(),
		Restarts:       c.restarts,
	}
}

var _ CommandTarget = (*Camera)(nil)
