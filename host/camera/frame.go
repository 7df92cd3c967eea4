package camera

import (
	"image"
	"image/png"
	"io"
	"time"

	"gbcam/protocol"
)

// Frame is one received frame
type Frame struct {
	Seq  uint64
	Time time.Time
	Data []byte // protocol.FrameSize bytes, trailer included
}

// ImageOptions are host-side corrections applied when rendering a frame
type ImageOptions struct {
	// Gain and Offset map a raw sample s to Gain*(s+Offset)
	Gain   float64
	Offset float64

	// ShiftDelay drops this many leading samples to realign the first pixel
	ShiftDelay int
}

// DefaultImageOptions renders raw samples unchanged
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Gain: 1}
}

// VisibleHeight is the number of rows that carry image data
const VisibleHeight = protocol.Height - protocol.BackPorch

// Image renders the visible rows as a grayscale image
func (f *Frame) Image(opts ImageOptions) *image.Gray {
	// Trailer bytes are replaced by the last sample so they never show up as pixels.
	samples := make([]byte, len(f.Data))
	copy(samples, f.Data)
	if n := len(samples); n >= 3 {
		samples[n-2] = samples[n-3]
		samples[n-1] = samples[n-3]
	}

	img := image.NewGray(image.Rect(0, 0, protocol.Width, VisibleHeight))
	for i := range img.Pix {
		idx := (i + opts.ShiftDelay) % len(samples)
		if idx < 0 {
			idx += len(samples)
		}
		img.Pix[i] = clamp(opts.Gain * (float64(samples[idx]) + opts.Offset))
	}
	return img
}

// WritePNG encodes the rendered frame as PNG
func (f *Frame) WritePNG(w io.Writer, opts ImageOptions) error {
	return png.Encode(w, f.Image(opts))
}

// Histogram counts pixel intensities of the rendered frame
func (f *Frame) Histogram(opts ImageOptions) [256]int {
	var hist [256]int
	for _, v := range f.Image(opts).Pix {
		hist[v]++
	}
	return hist
}

func clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
