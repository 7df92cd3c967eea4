package camera

import (
	"io"
	"time"

	"github.com/golang/glog"

	"gbcam/protocol"
)

// FrameReader splits the device byte stream into frames
type FrameReader struct {
	scanner *protocol.FrameScanner
	seq     uint64

	windowStart time.Time
	windowCount int
	fps         float64
}

// NewFrameReader creates a reader on the link
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{scanner: protocol.NewFrameScanner(r)}
}

// Next blocks until a complete frame arrives. Bytes before a misaligned
// trailer are discarded.
func (r *FrameReader) Next() (*Frame, error) {
	skipped := r.scanner.Skipped()
	data, err := r.scanner.Next()
	if err != nil {
		return nil, err
	}
	if n := r.scanner.Skipped() - skipped; n > 0 {
		glog.Warningf("resynchronised after discarding %d bytes", n)
	}

	now := time.Now()
	r.seq++
	r.track(now)
	if glog.V(2) {
		glog.Infof("frame %d (%.1f fps)", r.seq, r.fps)
	}
	return &Frame{Seq: r.seq, Time: now, Data: data}, nil
}

// track updates the frame rate over windows of about 5 seconds
func (r *FrameReader) track(now time.Time) {
	if r.windowStart.IsZero() {
		r.windowStart = now
	}
	r.windowCount++
	if elapsed := now.Sub(r.windowStart); elapsed > 0 {
		r.fps = float64(r.windowCount) / elapsed.Seconds()
	}
	if now.Sub(r.windowStart) > 5*time.Second {
		r.windowStart = now
		r.windowCount = 0
	}
}

// FPS returns the recent frame rate
func (r *FrameReader) FPS() float64 {
	return r.fps
}

// Skipped returns the total number of bytes discarded while resynchronising
func (r *FrameReader) Skipped() int {
	return r.scanner.Skipped()
}
