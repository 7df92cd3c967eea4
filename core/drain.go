package core

import (
	"context"
	"io"
	"sync/atomic"

	"gbcam/protocol"
)

// Drainer is the transmit side of the pipeline. It runs in its own context,
// waits for frame notifications and streams each ready frame to the host link.
// It only ever reads the frame buffers through Acquire/Release.
type Drainer struct {
	frames *FrameBuffers
	signal *FrameSignal
	out    io.Writer

	sent      atomic.Uint32
	coalesced atomic.Uint32
	txErrors  atomic.Uint32
}

// NewDrainer creates a drainer writing frames to out
func NewDrainer(frames *FrameBuffers, signal *FrameSignal, out io.Writer) *Drainer {
	return &Drainer{
		frames: frames,
		signal: signal,
		out:    out,
	}
}

// Run drains frames until ctx is done. On the device ctx is never cancelled.
func (d *Drainer) Run(ctx context.Context) error {
	for {
		if err := d.Step(ctx); err != nil {
			return err
		}
	}
}

// Step waits for one notification and transmits the ready frame, if any.
// Transmit failures are counted, never returned.
func (d *Drainer) Step(ctx context.Context) error {
	if err := d.signal.Wait(ctx); err != nil {
		return err
	}
	// One buffer is ready at most, so extra notifications carry nothing new.
	coalesced := uint32(d.signal.Drain())
	if coalesced > 0 {
		d.coalesced.Add(coalesced)
	}

	frame, idx, ok := d.frames.Acquire()
	if !ok {
		return nil
	}
	protocol.StampTrailer(frame)
	n, err := d.out.Write(frame)
	d.frames.Release(idx)

	if err != nil || n != len(frame) {
		d.txErrors.Add(1)
		RecordEvent(EvtTransmitError, uint32(n), 0)
		DebugAsync("drain: frame write failed after " + utoa(uint32(n)) + " bytes")
		return nil
	}
	d.sent.Add(1)
	RecordEvent(EvtFrameSent, uint32(n), coalesced)
	return nil
}

// Sent returns the number of frames transmitted
func (d *Drainer) Sent() uint32 {
	return d.sent.Load()
}

// Coalesced returns the number of notifications folded into an earlier one
func (d *Drainer) Coalesced() uint32 {
	return d.coalesced.Load()
}

// TransmitErrors returns the number of failed frame writes
func (d *Drainer) TransmitErrors() uint32 {
	return d.txErrors.Load()
}
