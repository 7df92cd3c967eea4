package core

import (
	"time"

	"gbcam/protocol"
)

// CommandTarget is what host commands act on
type CommandTarget interface {
	PokeRegister(offset, value byte) bool
	ResetRegisters()
	Restart()
}

// Interpreter parses host commands from the link. It runs in the primary
// context's polling loop. Partial commands are dropped silently and nothing is
// ever sent back.
type Interpreter struct {
	src    ByteSource
	target CommandTarget

	byteTimeout  time.Duration
	pollInterval time.Duration

	executed uint32
	dropped  uint32
}

// NewInterpreter creates an interpreter using the timeouts from cfg
func NewInterpreter(src ByteSource, target CommandTarget, cfg Config) *Interpreter {
	applyDefaults(&cfg)
	return &Interpreter{
		src:          src,
		target:       target,
		byteTimeout:  cfg.ByteTimeout,
		pollInterval: cfg.PollInterval,
	}
}

// Poll handles at most one command. It returns false when no opcode byte
// was waiting.
func (in *Interpreter) Poll() bool {
	if in.src.Buffered() == 0 {
		return false
	}
	op, err := in.src.ReadByte()
	if err != nil {
		return false
	}

	switch op {
	case protocol.OpWriteRegister:
		offset, ok := in.readByte()
		if !ok {
			in.drop(op, 0)
			return true
		}
		value, ok := in.readByte()
		if !ok {
			in.drop(op, 1)
			return true
		}
		if !in.target.PokeRegister(offset, value) {
			in.drop(op, 2)
			return true
		}
		in.done(op, uint32(offset)<<8|uint32(value))

	case protocol.OpResetRegisters:
		in.target.ResetRegisters()
		in.done(op, 0)

	case protocol.OpRestart:
		in.target.Restart()
		in.done(op, 0)

	default:
		// Unknown opcodes are ignored.
	}
	return true
}

// readByte waits up to the byte timeout for one operand byte.
// A zero timeout checks exactly once.
func (in *Interpreter) readByte() (byte, bool) {
	deadline := time.Now().Add(in.byteTimeout)
	for in.src.Buffered() == 0 {
		if !time.Now().Before(deadline) {
			return 0, false
		}
		time.Sleep(in.pollInterval)
	}
	b, err := in.src.ReadByte()
	return b, err == nil
}

func (in *Interpreter) done(op byte, operand uint32) {
	in.executed++
	RecordEvent(EvtCommand, uint32(op), operand)
}

func (in *Interpreter) drop(op byte, read uint32) {
	in.dropped++
	RecordEvent(EvtCommandDrop, uint32(op), read)
}

// CommandStats counts interpreter outcomes
type CommandStats struct {
	Executed uint32
	Dropped  uint32
}

// Stats returns the executed and dropped command counts
func (in *Interpreter) Stats() CommandStats {
	return CommandStats{Executed: in.executed, Dropped: in.dropped}
}
