// Package protocol describes the host link between the camera firmware and the host:
// fixed-length frames terminated by a two-byte marker, and single-byte opcode commands.
package protocol

// Version represents the gbcam firmware version
const Version = "0.1.0"

// Frame geometry
const (
	Width      = 128
	Height     = 128
	Resolution = Width * Height // pixels per exposure, one byte each

	// TrailerSize is the reserved region after the pixels. The sampler keeps writing
	// into it; only the last two bytes carry the end-of-frame marker.
	TrailerSize = 256
	FrameSize   = Resolution + TrailerSize

	// BackPorch is the number of trailing sensor rows that carry no image data
	BackPorch = 5
)

// End-of-frame marker, written at FrameSize-2 and FrameSize-1
const (
	TrailerMark0 = 0xAA
	TrailerMark1 = 0x55
)

// Command opcodes. No acknowledgement is ever sent.
const (
	OpWriteRegister  = 0 // followed by [offset][value]
	OpResetRegisters = 1
	OpRestart        = 2
)

// RegisterBytes is the size of the raw register descriptor addressed by OpWriteRegister
const RegisterBytes = 8

// StampTrailer writes the end-of-frame marker into a FrameSize buffer
func StampTrailer(frame []byte) {
	frame[FrameSize-2] = TrailerMark0
	frame[FrameSize-1] = TrailerMark1
}

// HasTrailer reports whether frame ends with the end-of-frame marker
func HasTrailer(frame []byte) bool {
	return len(frame) == FrameSize &&
		frame[FrameSize-2] == TrailerMark0 &&
		frame[FrameSize-1] == TrailerMark1
}

// EncodeWriteRegister returns the bytes of a single register-byte write
func EncodeWriteRegister(offset, value byte) []byte {
	return []byte{OpWriteRegister, offset, value}
}

// EncodeRegisterUpload returns the full upload sequence for a raw descriptor:
// one write per byte followed by a restart, so the sensor is reloaded once.
func EncodeRegisterUpload(raw [RegisterBytes]byte) []byte {
	out := make([]byte, 0, RegisterBytes*3+1)
	for i, v := range raw {
		out = append(out, EncodeWriteRegister(byte(i), v)...)
	}
	return append(out, OpRestart)
}
