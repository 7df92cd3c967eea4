package core

import "sync/atomic"

// FrameTrigger handles the frame-start edge. OnEdge runs in interrupt context:
// it never blocks, never allocates and never transmits.
type FrameTrigger struct {
	frames *FrameBuffers
	signal *FrameSignal
	acq    *Acquisition
	led    Indicator

	edges atomic.Uint32
}

// NewFrameTrigger wires the edge handler to the pipeline. led may be nil.
func NewFrameTrigger(frames *FrameBuffers, signal *FrameSignal, acq *Acquisition, led Indicator) *FrameTrigger {
	return &FrameTrigger{
		frames: frames,
		signal: signal,
		acq:    acq,
		led:    led,
	}
}

// OnEdge closes the running exposure and re-arms the acquisition.
//
// Order: publish and notify the drain context first, then re-arm, then start
// sampling, then toggle the indicator. Re-arming must finish before the next
// edge or samples are lost. The first edge after an arm without sampling
// publishes nothing.
func (t *FrameTrigger) OnEdge() {
	edges := t.edges.Add(1)
	prev := t.acq.State()
	RecordEvent(EvtTrigger, uint32(prev), edges)

	next := t.frames.Active()
	if prev == CaptureRunning {
		var published bool
		next, published = t.frames.Rotate()
		if published {
			t.signal.Notify()
			RecordEvent(EvtFramePublish, t.frames.Published(), 0)
		} else {
			RecordEvent(EvtFrameDrop, t.frames.Dropped(), 0)
		}
	}

	// Cancel whatever is still in flight so only one transfer is ever armed.
	if prev != CaptureIdle {
		t.acq.Abort()
	}
	t.acq.ArmCapture(next)
	_ = t.acq.StartSampling() // armed above, cannot fail

	if t.led != nil {
		t.led.Toggle()
	}
}

// Edges returns the number of handled edges
func (t *FrameTrigger) Edges() uint32 {
	return t.edges.Load()
}
