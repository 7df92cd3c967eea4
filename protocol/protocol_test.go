package protocol

import "testing"

func TestFrameGeometry(t *testing.T) {
	if FrameSize != 16640 {
		t.Errorf("Expected frame size 16640, got %d", FrameSize)
	}
}

func TestStampTrailer(t *testing.T) {
	frame := make([]byte, FrameSize)
	for i := range frame {
		frame[i] = byte(i)
	}
	if HasTrailer(frame) {
		t.Fatal("Unstamped frame should not carry the trailer")
	}

	StampTrailer(frame)
	if frame[FrameSize-2] != 0xAA || frame[FrameSize-1] != 0x55 {
		t.Errorf("Trailer mismatch: %#x %#x", frame[FrameSize-2], frame[FrameSize-1])
	}
	if frame[FrameSize-3] != byte((FrameSize-3)&0xff) {
		t.Error("StampTrailer touched bytes before the marker")
	}
	if !HasTrailer(frame) {
		t.Error("Stamped frame should carry the trailer")
	}
	if HasTrailer(frame[:FrameSize-1]) {
		t.Error("Short frame must not be accepted")
	}
}

func TestEncodeRegisterUpload(t *testing.T) {
	raw := [RegisterBytes]byte{0xA8, 0x04, 0x00, 0x3F, 0x01, 0x00, 0x01, 0x00}
	out := EncodeRegisterUpload(raw)

	if len(out) != 25 {
		t.Fatalf("Expected 25 bytes, got %d", len(out))
	}
	for i := 0; i < RegisterBytes; i++ {
		cmd := out[i*3 : i*3+3]
		if cmd[0] != OpWriteRegister || cmd[1] != byte(i) || cmd[2] != raw[i] {
			t.Errorf("Write %d mismatch: %v", i, cmd)
		}
	}
	if out[24] != OpRestart {
		t.Errorf("Expected trailing restart opcode, got %d", out[24])
	}
}
