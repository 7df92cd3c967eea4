package protocol

import "testing"

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)

	if !fifo.IsEmpty() {
		t.Error("New FIFO should be empty")
	}

	if fifo.Buffered() != 0 {
		t.Errorf("Empty FIFO should have 0 buffered, got %d", fifo.Buffered())
	}

	written := fifo.Write([]byte{1, 2, 3, 4, 5})
	if written != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", written)
	}

	readBuf := make([]byte, 3)
	read := fifo.Read(readBuf)
	if read != 3 {
		t.Errorf("Expected to read 3 bytes, read %d", read)
	}
	if readBuf[0] != 1 || readBuf[1] != 2 || readBuf[2] != 3 {
		t.Errorf("Read data mismatch: got %v", readBuf)
	}

	if fifo.Buffered() != 2 {
		t.Errorf("After reading 3, expected 2 buffered, got %d", fifo.Buffered())
	}

	fifo.Reset()
	bigData := make([]byte, 12)
	written = fifo.Write(bigData)
	if written != 9 { // Buffer size is 10, can only store 9 (one slot reserved)
		t.Errorf("Expected to write 9 bytes to size-10 FIFO, wrote %d", written)
	}
	if fifo.Free() != 0 {
		t.Errorf("Expected full FIFO, %d free", fifo.Free())
	}
}

func TestFifoBufferReadByte(t *testing.T) {
	fifo := NewFifoBuffer(4)

	if _, err := fifo.ReadByte(); err != ErrFifoEmpty {
		t.Errorf("Expected ErrFifoEmpty, got %v", err)
	}

	fifo.PutByte(7)
	fifo.PutByte(8)
	b, err := fifo.ReadByte()
	if err != nil || b != 7 {
		t.Errorf("Expected 7, got %d (%v)", b, err)
	}
	fifo.PutByte(9)
	fifo.PutByte(10)
	if fifo.PutByte(11) {
		t.Error("PutByte should fail on a full FIFO")
	}

	got := []byte{}
	for fifo.Buffered() > 0 {
		b, _ := fifo.ReadByte()
		got = append(got, b)
	}
	if len(got) != 3 || got[0] != 8 || got[1] != 9 || got[2] != 10 {
		t.Errorf("Wrap-around data mismatch: got %v", got)
	}
}
