package core

import "context"

// FrameSignal is the single-slot notification from the edge handler to the
// drain context. Notify never blocks; repeated notifications collapse into
// the one pending slot.
type FrameSignal struct {
	ch chan struct{}
}

// NewFrameSignal creates an empty signal
func NewFrameSignal() *FrameSignal {
	return &FrameSignal{ch: make(chan struct{}, 1)}
}

// Notify posts a notification. It returns false when one was already pending.
func (s *FrameSignal) Notify() bool {
	select {
	case s.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// Wait blocks until a notification arrives or ctx is done
func (s *FrameSignal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain discards pending notifications and returns how many were dropped
func (s *FrameSignal) Drain() int {
	n := 0
	for {
		select {
		case <-s.ch:
			n++
		default:
			return n
		}
	}
}
