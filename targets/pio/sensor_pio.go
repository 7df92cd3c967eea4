//go:build rp2040

package pio

// PIO sequencer for the line-scan sensor.
// One state machine resets the sensor, shifts the register load out on SIN
// and then generates XCK, START and the exposure/readout cycle forever.
//
// Side-set (3 bits, mandatory): bit 0 = XCK, bit 1 = LOAD, bit 2 = START.
// Every instruction alternates XCK low/high, so the sequencer clock is twice
// the sensor clock.
//
// Load words are consumed MSB first with autopull at 32 bits: 8 registers of
// 11 bits (3-bit address + 8-bit value), then 8 bits of padding.

import (
	"gbcam/core"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// Program labels (absolute, program loaded at offset 0)
const (
	lblRegister = 4
	lblBit      = 6
	lblFrame    = 12
	lblExposure = 14
	lblReadout  = 18
)

// Side-set values
const (
	sideLow   = 0
	sideClock = 1 << 0
	sideLoad  = 1 << 1
	sideStart = 1 << 2
)

// buildSensorProgram creates the sequencer program using AssemblerV0
func buildSensorProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 3}
	return []uint16{
		asm.Set(rp2pio.SetDestPins, 0).Side(sideLow).Encode(),   // 0: XRST low
		asm.Set(rp2pio.SetDestPins, 1).Side(sideClock).Encode(), // 1: XRST high
		asm.Set(rp2pio.SetDestY, 7).Side(sideLow).Encode(),      // 2: 8 registers
		asm.Nop().Side(sideClock).Encode(),                      // 3
		// register:
		asm.Set(rp2pio.SetDestX, 9).Side(sideLow).Encode(), // 4: first 10 bits
		asm.Nop().Side(sideClock).Encode(),                 // 5
		// bit:
		asm.Out(rp2pio.OutDestPins, 1).Side(sideLow).Encode(),                         // 6
		asm.Jmp(lblBit, rp2pio.JmpXNZeroDec).Side(sideClock).Encode(),                 // 7
		asm.Out(rp2pio.OutDestPins, 1).Side(sideLow).Encode(),                         // 8: 11th bit
		asm.Jmp(lblRegister, rp2pio.JmpYNZeroDec).Side(sideClock | sideLoad).Encode(), // 9: latch
		asm.Out(rp2pio.OutDestNull, 8).Side(sideLow).Encode(),                         // 10: padding
		asm.Nop().Side(sideClock).Encode(),                                            // 11
		// frame:
		asm.Nop().Side(sideStart).Encode(),             // 12
		asm.Nop().Side(sideStart | sideClock).Encode(), // 13
		// exposure: clock until READ rises
		asm.Nop().Side(sideLow).Encode(),                                 // 14
		asm.Jmp(lblReadout, rp2pio.JmpPinInput).Side(sideClock).Encode(), // 15
		asm.Nop().Side(sideLow).Encode(),                                 // 16
		asm.Jmp(lblExposure, rp2pio.JmpAlways).Side(sideClock).Encode(),  // 17
		// readout: clock while READ is high, then start the next frame
		asm.Nop().Side(sideLow).Encode(),                                 // 18
		asm.Jmp(lblReadout, rp2pio.JmpPinInput).Side(sideClock).Encode(), // 19
		asm.Nop().Side(sideLow).Encode(),                                 // 20
		asm.Jmp(lblFrame, rp2pio.JmpAlways).Side(sideClock).Encode(),     // 21
	}
}

const sensorPIOOrigin = 0 // Load at offset 0 for correct jump addresses

// SensorPins is the sensor wiring. Clock, Load and Start must be consecutive
// GPIOs in that order.
type SensorPins struct {
	Read  machine.Pin // READ input, used as the jmp pin
	Reset machine.Pin // XRST
	Clock machine.Pin // XCK, side-set base
	Data  machine.Pin // SIN
}

// SensorPIO implements core.ShiftClock on a PIO state machine
type SensorPIO struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pins   SensorPins
	offset uint8
	div    core.ClockDivider
	pioNum uint8
	smNum  uint8
}

// NewSensorPIO creates a sequencer on the given PIO block and state machine
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewSensorPIO(pioNum, smNum uint8) *SensorPIO {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &SensorPIO{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		pioNum: pioNum,
		smNum:  smNum,
		div:    core.SequencerDivider(core.SensorClockHz),
	}
}

// Init loads the program and configures the state machine. The state machine
// stays disabled until the first Load.
func (s *SensorPIO) Init(pins SensorPins) error {
	s.pins = pins

	// Claim the state machine first
	if !s.sm.TryClaim() {
		return errNoStateMachine
	}

	program := buildSensorProgram()
	offset, err := s.pio.AddProgram(program, sensorPIOOrigin)
	if err != nil {
		return err
	}
	s.offset = offset

	// Outputs go to the PIO, READ stays a plain input so the edge IRQ still works
	pins.Reset.Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	pins.Data.Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	for i := machine.Pin(0); i < 3; i++ {
		(pins.Clock + i).Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	}
	pins.Read.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(pins.Reset, 1)
	cfg.SetOutPins(pins.Data, 1)
	cfg.SetSidesetPins(pins.Clock)
	cfg.SetSidesetParams(3, false, false)
	cfg.SetJmpPin(pins.Read)

	// Shift left (MSB first), autopull, 32-bit threshold
	cfg.SetOutShift(false, true, 32)
	cfg.SetFIFOJoin(rp2pio.FIFO_JOIN_TX)

	cfg.SetWrap(offset, offset+uint8(len(program))-1)
	cfg.SetClkDivIntFrac(s.div.Int, s.div.Frac)

	// Initialize state machine FIRST
	s.sm.Init(offset, cfg)

	// THEN set pin directions (must be after Init!)
	s.sm.SetPindirsConsecutive(pins.Reset, 1, true)
	s.sm.SetPindirsConsecutive(pins.Clock, 3, true)
	s.sm.SetPindirsConsecutive(pins.Data, 1, true)

	s.sm.SetPinsConsecutive(pins.Reset, 1, false)
	s.sm.SetPinsConsecutive(pins.Clock, 3, false)
	s.sm.SetPinsConsecutive(pins.Data, 1, false)

	return nil
}

// SetDivider applies the sequencer clock divider
func (s *SensorPIO) SetDivider(div core.ClockDivider) {
	s.div = div
	s.sm.SetClkDiv(div.Int, div.Frac)
}

// Load restarts the program from the reset step, queues the load words and
// enables the state machine. The joined TX FIFO holds all three words.
func (s *SensorPIO) Load(words core.LoadWords) {
	// See StateMachine.Init for reference on this sequence of operations.
	s.sm.SetEnabled(false)
	s.sm.ClearFIFOs()
	s.sm.Restart()
	s.sm.ClkDivRestart()
	s.sm.Exec(rp2pio.EncodeJmp(s.offset, rp2pio.JmpAlways))

	for _, w := range words {
		s.sm.TxPut(w)
	}
	s.sm.SetEnabled(true)
}

// Stop halts the sequencer, leaving the outputs where they are
func (s *SensorPIO) Stop() {
	s.sm.SetEnabled(false)
	s.sm.ClearFIFOs()
}

// Divider returns the applied divider
func (s *SensorPIO) Divider() core.ClockDivider {
	return s.div
}

var _ core.ShiftClock = (*SensorPIO)(nil)
