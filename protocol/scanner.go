package protocol

import (
	"bytes"
	"io"
)

var trailer = []byte{TrailerMark0, TrailerMark1}

// FrameScanner splits a host-link byte stream into FrameSize frames.
// The stream has no header, so alignment is recovered from the trailer marker:
// when a candidate frame does not end with the marker, everything up to and
// including the next marker in the window is discarded.
type FrameScanner struct {
	r       io.Reader
	window  []byte
	chunk   []byte
	skipped int
}

// NewFrameScanner creates a scanner reading from r
func NewFrameScanner(r io.Reader) *FrameScanner {
	return &FrameScanner{
		r:      r,
		window: make([]byte, 0, 2*FrameSize),
		chunk:  make([]byte, 4096),
	}
}

// Next returns a copy of the next aligned frame
func (s *FrameScanner) Next() ([]byte, error) {
	for {
		if len(s.window) >= FrameSize {
			candidate := s.window[:FrameSize]
			if HasTrailer(candidate) {
				frame := make([]byte, FrameSize)
				copy(frame, candidate)
				s.consume(FrameSize)
				return frame, nil
			}
			s.resync()
			continue
		}

		n, err := s.r.Read(s.chunk)
		s.window = append(s.window, s.chunk[:n]...)
		if err != nil {
			if err == io.EOF && n > 0 {
				continue
			}
			return nil, err
		}
	}
}

// Skipped returns the number of bytes dropped while resynchronising
func (s *FrameScanner) Skipped() int {
	return s.skipped
}

func (s *FrameScanner) resync() {
	// Search past the first byte so a misaligned window always shrinks.
	n := len(s.window) - 1 // keep a possible half marker
	if idx := bytes.Index(s.window[1:], trailer); idx >= 0 {
		n = idx + 1 + len(trailer)
	}
	s.skipped += n
	s.consume(n)
}

func (s *FrameScanner) consume(n int) {
	s.window = append(s.window[:0], s.window[n:]...)
}
