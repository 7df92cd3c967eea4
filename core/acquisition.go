package core

import (
	"errors"
	"sync/atomic"
)

// CaptureState is the acquisition session state
type CaptureState uint32

const (
	CaptureIdle    CaptureState = 0 // nothing armed
	CaptureArmed   CaptureState = 1 // transfer armed, sampler stopped
	CaptureRunning CaptureState = 2 // sampler depositing into the armed buffer
)

func (s CaptureState) String() string {
	switch s {
	case CaptureIdle:
		return "idle"
	case CaptureArmed:
		return "armed"
	case CaptureRunning:
		return "running"
	}
	return "unknown"
}

// ErrNotArmed is returned when sampling is started without an armed transfer
var ErrNotArmed = errors.New("acquisition: capture not armed")

// Acquisition owns the sampler and its transfer channel as one unit.
// The state is read from the edge handler, so it is kept in atomics.
//
// At most one transfer may be armed at a time. Re-arming over a live transfer
// is left to the caller to avoid; the controller does not guard against it.
type Acquisition struct {
	drv Sampler
	div ClockDivider

	state          atomic.Uint32
	armedLen       atomic.Uint32
	abortRequested atomic.Bool
}

// NewAcquisition wraps a sampler driver
func NewAcquisition(drv Sampler) *Acquisition {
	return &Acquisition{drv: drv}
}

// ConfigureSampling sets the sample rate from the ADC timebase
func (a *Acquisition) ConfigureSampling(targetHz uint32) ClockDivider {
	a.div = SamplerDivider(targetHz)
	a.drv.SetDivider(a.div)
	return a.div
}

// ArmCapture programs a transfer of the whole of buf and enables it.
// Sampling is not started.
func (a *Acquisition) ArmCapture(buf []byte) {
	a.drv.Arm(buf)
	a.armedLen.Store(uint32(len(buf)))
	a.abortRequested.Store(false)
	a.state.Store(uint32(CaptureArmed))
}

// StartSampling enables the sampler. Samples only land when a transfer is armed.
func (a *Acquisition) StartSampling() error {
	if a.State() == CaptureIdle {
		return ErrNotArmed
	}
	a.drv.Run(true)
	a.state.Store(uint32(CaptureRunning))
	return nil
}

// StopSampling disables the sampler, leaving the transfer armed
func (a *Acquisition) StopSampling() {
	a.drv.Run(false)
	if a.State() == CaptureRunning {
		a.state.Store(uint32(CaptureArmed))
	}
}

// Abort stops sampling and cancels the in-flight transfer immediately
func (a *Acquisition) Abort() {
	a.abortRequested.Store(true)
	a.drv.Abort()
	a.armedLen.Store(0)
	a.state.Store(uint32(CaptureIdle))
}

// State returns the current session state
func (a *Acquisition) State() CaptureState {
	return CaptureState(a.state.Load())
}

// ArmedLen returns the length of the armed transfer, 0 when idle
func (a *Acquisition) ArmedLen() int {
	return int(a.armedLen.Load())
}

// AbortRequested reports whether the last transition was an abort
func (a *Acquisition) AbortRequested() bool {
	return a.abortRequested.Load()
}

// Divider returns the applied sampler divider
func (a *Acquisition) Divider() ClockDivider {
	return a.div
}

// ClockGenerator drives the sensor clock and register load sequencer
type ClockGenerator struct {
	drv ShiftClock
	div ClockDivider
}

// NewClockGenerator wraps a sequencer driver
func NewClockGenerator(drv ShiftClock) *ClockGenerator {
	return &ClockGenerator{drv: drv}
}

// Configure applies the divider nearest to the requested sensor clock
func (g *ClockGenerator) Configure(targetHz uint32) ClockDivider {
	g.div = SequencerDivider(targetHz)
	g.drv.SetDivider(g.div)
	return g.div
}

// LoadAndStart shifts the load words out once and keeps clocking
func (g *ClockGenerator) LoadAndStart(words LoadWords) {
	g.drv.Load(words)
}

// Divider returns the applied sequencer divider
func (g *ClockGenerator) Divider() ClockDivider {
	return g.div
}

// SensorHz returns the achieved sensor clock
func (g *ClockGenerator) SensorHz() uint32 {
	return g.div.Hz(MasterClockHz) / SensorClockMultiplier
}
