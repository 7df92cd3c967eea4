package core

import (
	"sync/atomic"

	"gbcam/protocol"
)

// Buffer ownership states
const (
	bufFree     uint32 = iota // owned by nobody
	bufFilling                // armed as the transfer destination
	bufReady                  // completed, waiting for the drain context
	bufDraining               // being stamped and transmitted
)

// FrameBuffers is the double-buffered pixel store shared by the edge handler
// (producer) and the drain context (consumer). Ownership of each buffer moves
// through free -> filling -> ready -> draining -> free with atomic
// compare-and-swap, so the sampler never writes a buffer that is being sent.
type FrameBuffers struct {
	bufs   [2][protocol.FrameSize]byte
	state  [2]atomic.Uint32
	active int // index of the filling buffer, producer side only

	published atomic.Uint32
	dropped   atomic.Uint32
	reclaimed atomic.Uint32
}

// NewFrameBuffers returns buffers with buffer 0 filling
func NewFrameBuffers() *FrameBuffers {
	f := &FrameBuffers{}
	f.state[0].Store(bufFilling)
	return f
}

// Active returns the buffer currently owned by the acquisition
func (f *FrameBuffers) Active() []byte {
	return f.bufs[f.active][:]
}

// Rotate hands the filling buffer to the drain context and returns the buffer
// to arm next. Only called from the edge handler.
//
// If the other buffer is still being drained the completed frame is dropped
// and the same buffer is returned, published is false. A ready frame the drain
// context has not picked up yet is overwritten: only the latest frame matters.
func (f *FrameBuffers) Rotate() (next []byte, published bool) {
	done := f.active
	other := 1 - done

	if !f.state[other].CompareAndSwap(bufFree, bufFilling) {
		if !f.state[other].CompareAndSwap(bufReady, bufFilling) {
			// Drain context holds the other buffer.
			f.dropped.Add(1)
			return f.bufs[done][:], false
		}
		f.reclaimed.Add(1)
	}

	f.state[done].Store(bufReady)
	f.active = other
	f.published.Add(1)
	return f.bufs[other][:], true
}

// Acquire takes the ready frame for draining. Only called from the drain context.
func (f *FrameBuffers) Acquire() (frame []byte, idx int, ok bool) {
	for i := range f.state {
		if f.state[i].CompareAndSwap(bufReady, bufDraining) {
			return f.bufs[i][:], i, true
		}
	}
	return nil, -1, false
}

// Release returns a drained buffer
func (f *FrameBuffers) Release(idx int) {
	f.state[idx].CompareAndSwap(bufDraining, bufFree)
}

// Published returns the number of frames handed to the drain context
func (f *FrameBuffers) Published() uint32 {
	return f.published.Load()
}

// Dropped returns the number of frames discarded because the drain context was busy
func (f *FrameBuffers) Dropped() uint32 {
	return f.dropped.Load()
}

// Reclaimed returns the number of ready frames overwritten before being drained
func (f *FrameBuffers) Reclaimed() uint32 {
	return f.reclaimed.Load()
}
