package core

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"gbcam/protocol"
)

type pipeline struct {
	cam     *Camera
	sampler *mockSampler
	clock   *mockShiftClock
	led     *mockIndicator
	out     *bytes.Buffer
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	p := &pipeline{
		sampler: &mockSampler{},
		clock:   &mockShiftClock{},
		led:     &mockIndicator{},
		out:     &bytes.Buffer{},
	}
	p.cam = NewCamera(DefaultConfig(), p.clock, p.sampler, p.led, p.out)
	p.cam.Start()
	return p
}

func stepTimeout(d *Drainer, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.Step(ctx)
}

func TestCameraStart(t *testing.T) {
	p := newPipeline(t)

	if p.cam.Acquisition().State() != CaptureArmed {
		t.Errorf("Expected armed after start, got %s", p.cam.Acquisition().State())
	}
	if p.sampler.running {
		t.Error("Sampling started before the first frame edge")
	}
	if len(p.clock.words) != 1 || p.clock.words[0] != (LoadWords{0x15041100, 0x33F80340, 0x300F0000}) {
		t.Errorf("Unexpected initial load %v", p.clock.words)
	}
	if p.sampler.div.Int != 1279 || p.clock.div.Int != 1666 {
		t.Errorf("Unexpected dividers: sampler %+v clock %+v", p.sampler.div, p.clock.div)
	}
}

func TestFirstEdgePublishesNothing(t *testing.T) {
	p := newPipeline(t)

	p.cam.OnFrameStart()
	if p.cam.Frames().Published() != 0 {
		t.Errorf("Expected no published frame, got %d", p.cam.Frames().Published())
	}
	if p.cam.Acquisition().State() != CaptureRunning {
		t.Errorf("Expected running, got %s", p.cam.Acquisition().State())
	}
	if p.led.toggles != 1 {
		t.Errorf("Expected 1 indicator toggle, got %d", p.led.toggles)
	}
}

func TestFrameEndToEnd(t *testing.T) {
	p := newPipeline(t)

	p.cam.OnFrameStart()
	p.sampler.fill(0x10)
	want := append([]byte(nil), p.sampler.dst...)
	want[protocol.FrameSize-2] = protocol.TrailerMark0
	want[protocol.FrameSize-1] = protocol.TrailerMark1

	p.cam.OnFrameStart()
	if p.cam.Frames().Published() != 1 {
		t.Fatalf("Expected 1 published frame, got %d", p.cam.Frames().Published())
	}

	if err := stepTimeout(p.cam.Drainer(), time.Second); err != nil {
		t.Fatalf("Drain step failed: %v", err)
	}
	if p.out.Len() != protocol.FrameSize {
		t.Fatalf("Expected %d bytes on the link, got %d", protocol.FrameSize, p.out.Len())
	}
	if !bytes.Equal(p.out.Bytes(), want) {
		t.Error("Transmitted frame differs from captured samples")
	}
	if p.cam.Stats().Sent != 1 {
		t.Errorf("Expected 1 sent frame, got %d", p.cam.Stats().Sent)
	}
}

func TestNotificationsCoalesce(t *testing.T) {
	p := newPipeline(t)

	for i := 0; i < 6; i++ {
		p.sampler.fill(byte(i))
		p.cam.OnFrameStart()
	}
	stats := p.cam.Stats()
	if stats.Published != 5 {
		t.Errorf("Expected 5 published frames, got %d", stats.Published)
	}
	if stats.Reclaimed != 4 {
		t.Errorf("Expected 4 reclaimed frames, got %d", stats.Reclaimed)
	}

	if err := stepTimeout(p.cam.Drainer(), time.Second); err != nil {
		t.Fatalf("Drain step failed: %v", err)
	}
	if err := stepTimeout(p.cam.Drainer(), 20*time.Millisecond); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected no second notification, got %v", err)
	}
	if p.cam.Stats().Sent != 1 {
		t.Errorf("Expected one frame processed, got %d", p.cam.Stats().Sent)
	}

	// The transmitted frame is the last one completed.
	if p.out.Bytes()[0] != 5 {
		t.Errorf("Expected latest frame (seed 5), got seed %d", p.out.Bytes()[0])
	}
}

func TestFrameDroppedWhileDraining(t *testing.T) {
	p := newPipeline(t)
	frames := p.cam.Frames()

	p.cam.OnFrameStart()
	p.cam.OnFrameStart()

	// Drain context holds the published buffer.
	held, idx, ok := frames.Acquire()
	if !ok {
		t.Fatal("No ready frame to acquire")
	}
	filling := p.sampler.dst

	p.cam.OnFrameStart()
	if frames.Dropped() != 1 {
		t.Errorf("Expected 1 dropped frame, got %d", frames.Dropped())
	}
	if &p.sampler.dst[0] != &filling[0] {
		t.Error("Dropped frame did not re-arm the same buffer")
	}
	if &p.sampler.dst[0] == &held[0] {
		t.Error("Sampler re-armed onto the buffer being drained")
	}

	frames.Release(idx)
	p.cam.OnFrameStart()
	if frames.Published() != 2 {
		t.Errorf("Expected publishing to resume, got %d", frames.Published())
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 100, errors.New("link down")
}

func TestTransmitErrorCounted(t *testing.T) {
	cam := NewCamera(DefaultConfig(), &mockShiftClock{}, &mockSampler{}, nil, failingWriter{})
	cam.Start()
	cam.OnFrameStart()
	cam.OnFrameStart()

	if err := stepTimeout(cam.Drainer(), time.Second); err != nil {
		t.Fatalf("Transmit failure escaped the drain loop: %v", err)
	}
	stats := cam.Stats()
	if stats.TransmitErrors != 1 || stats.Sent != 0 {
		t.Errorf("Expected 1 error and 0 sent, got %d and %d", stats.TransmitErrors, stats.Sent)
	}

	// The buffer was released despite the failure.
	if _, _, ok := cam.Frames().Acquire(); ok {
		t.Error("Failed frame still marked ready")
	}
}

func TestRestartFromAnyState(t *testing.T) {
	p := newPipeline(t)
	acq := p.cam.Acquisition()

	check := func(label string) {
		t.Helper()
		if acq.State() != CaptureRunning {
			t.Errorf("%s: expected running, got %s", label, acq.State())
		}
		if acq.ArmedLen() != protocol.FrameSize {
			t.Errorf("%s: expected armed length %d, got %d", label, protocol.FrameSize, acq.ArmedLen())
		}
		if !p.sampler.running {
			t.Errorf("%s: sampler stopped", label)
		}
	}

	// Armed
	p.cam.Restart()
	check("armed")

	// Mid-capture
	p.cam.OnFrameStart()
	p.cam.Restart()
	check("running")

	// Idle
	acq.Abort()
	p.cam.Restart()
	check("idle")

	if len(p.clock.words) != 4 {
		t.Errorf("Expected 4 sequencer loads, got %d", len(p.clock.words))
	}
	if p.cam.Stats().Restarts != 3 {
		t.Errorf("Expected 3 restarts, got %d", p.cam.Stats().Restarts)
	}
}

func TestRestartAppliesRegisters(t *testing.T) {
	p := newPipeline(t)

	p.cam.PokeRegister(3, 0x80)
	if p.cam.LoadWords() != Pack(DefaultRegisters.Raw()) {
		t.Error("Register write reached the sensor before restart")
	}

	p.cam.Restart()
	want := Pack(p.cam.RawRegisters())
	if p.cam.LoadWords() != want || p.clock.words[len(p.clock.words)-1] != want {
		t.Errorf("Expected load %s after restart, got %s", want, p.cam.LoadWords())
	}

	p.cam.ResetRegisters()
	if p.cam.Registers() != DefaultRegisters {
		t.Errorf("Expected defaults after reset, got %+v", p.cam.Registers())
	}
}

func TestConcurrentEdgesAndDrain(t *testing.T) {
	p := newPipeline(t)
	drainer := p.cam.Drainer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- drainer.Run(ctx)
	}()

	for i := 0; i < 2000; i++ {
		p.cam.OnFrameStart()
		p.sampler.fill(byte(i))
	}
	p.cam.OnFrameStart()

	deadline := time.Now().Add(time.Second)
	for drainer.Sent() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected drain to stop with context.Canceled, got %v", err)
	}

	sent := drainer.Sent()
	if sent == 0 {
		t.Fatal("Expected frames sent while edges were arriving")
	}
	if sent > p.cam.Frames().Published() {
		t.Errorf("Sent %d frames but only %d were published", sent, p.cam.Frames().Published())
	}
	out := p.out.Bytes()
	if len(out) != int(sent)*protocol.FrameSize {
		t.Fatalf("Expected %d bytes on the link, got %d", int(sent)*protocol.FrameSize, len(out))
	}

	// Every transmitted frame is one whole fill, never a mix of two.
	for f := 0; f < int(sent); f++ {
		frame := out[f*protocol.FrameSize : (f+1)*protocol.FrameSize]
		if !protocol.HasTrailer(frame) {
			t.Fatalf("Frame %d has no trailer", f)
		}
		for i := 1; i < protocol.FrameSize-2; i++ {
			if frame[i] != frame[0]+byte(i) {
				t.Fatalf("Frame %d torn at byte %d", f, i)
			}
		}
	}
}
