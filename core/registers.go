package core

import "gbcam/protocol"

// ZeroCalibration selects the sensor's black-level calibration mode
type ZeroCalibration uint8

const (
	CalibrationNone     ZeroCalibration = 0
	CalibrationNegative ZeroCalibration = 1
	CalibrationPositive ZeroCalibration = 2
)

// EdgeDirection selects the edge-processing direction
type EdgeDirection uint8

const (
	DirectionNone       EdgeDirection = 0
	DirectionHorizontal EdgeDirection = 1
	DirectionVertical   EdgeDirection = 2
	DirectionBoth       EdgeDirection = 3
)

// EdgeRatio is the edge enhancement ratio
type EdgeRatio uint8

const (
	Ratio50  EdgeRatio = 0
	Ratio75  EdgeRatio = 1
	Ratio100 EdgeRatio = 2
	Ratio200 EdgeRatio = 3
	Ratio300 EdgeRatio = 4
	Ratio400 EdgeRatio = 5
)

// EdgeProcess selects between edge enhancement and edge extraction
type EdgeProcess uint8

const (
	EdgeEnhance EdgeProcess = 0
	EdgeExtract EdgeProcess = 1
)

// Registers is the typed view of the sensor's 64-bit control descriptor.
// Field widths are fixed by the sensor; wider values are truncated when the
// descriptor is encoded, never rejected.
type Registers struct {
	OutputReference     uint8           // 6 bits
	ZeroPoint           ZeroCalibration // 2 bits
	OutputGain          uint8           // 5 bits
	EdgeOperation       EdgeDirection   // 2 bits
	OverrideKernel      bool            // 1 bit
	ExposureHigh        uint8
	ExposureLow         uint8
	PixelCoefficient    uint8
	NeighborCoefficient uint8
	UnknownCoefficient  uint8
	OutputBias          uint8 // 3 bits
	InvertOutput        bool
	EdgeRatio           EdgeRatio   // 3 bits
	EdgeProcess         EdgeProcess // 1 bit
}

// RawRegisters is the descriptor as the eight bytes addressed by register writes
type RawRegisters [protocol.RegisterBytes]byte

// DefaultRegisters are the power-on register values
var DefaultRegisters = Registers{
	OutputReference:     40,
	ZeroPoint:           CalibrationPositive,
	OutputGain:          4,
	EdgeOperation:       DirectionNone,
	OverrideKernel:      false,
	ExposureHigh:        0,
	ExposureLow:         0x3f,
	PixelCoefficient:    1,
	NeighborCoefficient: 0,
	UnknownCoefficient:  1,
	OutputBias:          0,
	InvertOutput:        false,
	EdgeRatio:           Ratio50,
	EdgeProcess:         EdgeEnhance,
}

// Exposure returns the 16-bit exposure time
func (r Registers) Exposure() uint16 {
	return uint16(r.ExposureHigh)<<8 | uint16(r.ExposureLow)
}

// SetExposure splits a 16-bit exposure time into its two register halves
func (r *Registers) SetExposure(v uint16) {
	r.ExposureHigh = uint8(v >> 8)
	r.ExposureLow = uint8(v)
}

// Raw encodes the descriptor. Fields are packed least significant bit first in
// declaration order, so each byte holds the fields that share it from bit 0 up.
func (r Registers) Raw() RawRegisters {
	return RawRegisters{
		r.OutputReference&0x3f | uint8(r.ZeroPoint&0x3)<<6,
		r.OutputGain&0x1f | uint8(r.EdgeOperation&0x3)<<5 | boolBit(r.OverrideKernel)<<7,
		r.ExposureHigh,
		r.ExposureLow,
		r.PixelCoefficient,
		r.NeighborCoefficient,
		r.UnknownCoefficient,
		r.OutputBias&0x7 | boolBit(r.InvertOutput)<<3 | uint8(r.EdgeRatio&0x7)<<4 | uint8(r.EdgeProcess&0x1)<<7,
	}
}

// Registers decodes raw descriptor bytes
func (raw RawRegisters) Registers() Registers {
	return Registers{
		OutputReference:     raw[0] & 0x3f,
		ZeroPoint:           ZeroCalibration(raw[0] >> 6),
		OutputGain:          raw[1] & 0x1f,
		EdgeOperation:       EdgeDirection(raw[1] >> 5 & 0x3),
		OverrideKernel:      raw[1]>>7 != 0,
		ExposureHigh:        raw[2],
		ExposureLow:         raw[3],
		PixelCoefficient:    raw[4],
		NeighborCoefficient: raw[5],
		UnknownCoefficient:  raw[6],
		OutputBias:          raw[7] & 0x7,
		InvertOutput:        raw[7]>>3&0x1 != 0,
		EdgeRatio:           EdgeRatio(raw[7] >> 4 & 0x7),
		EdgeProcess:         EdgeProcess(raw[7] >> 7),
	}
}

// RegisterFile is the live descriptor. It is only touched from the primary
// context (command loop), never from the edge handler.
type RegisterFile struct {
	raw RawRegisters
}

// NewRegisterFile returns a register file holding the defaults
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{raw: DefaultRegisters.Raw()}
}

// Poke overwrites one raw descriptor byte. Offsets past the descriptor are
// ignored and reported as false.
func (f *RegisterFile) Poke(offset, value byte) bool {
	if int(offset) >= len(f.raw) {
		return false
	}
	f.raw[offset] = value
	return true
}

// Reset restores the defaults
func (f *RegisterFile) Reset() {
	f.raw = DefaultRegisters.Raw()
}

// Set replaces the whole descriptor
func (f *RegisterFile) Set(r Registers) {
	f.raw = r.Raw()
}

// Raw returns a copy of the descriptor bytes
func (f *RegisterFile) Raw() RawRegisters {
	return f.raw
}

// Registers returns the typed view of the descriptor
func (f *RegisterFile) Registers() Registers {
	return f.raw.Registers()
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (c ZeroCalibration) String() string {
	switch c {
	case CalibrationNone:
		return "none"
	case CalibrationNegative:
		return "negative"
	case CalibrationPositive:
		return "positive"
	}
	return "calibration(" + utoa(uint32(c)) + ")"
}

func (d EdgeDirection) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	}
	return "both"
}

func (r EdgeRatio) String() string {
	switch r {
	case Ratio50:
		return "50%"
	case Ratio75:
		return "75%"
	case Ratio100:
		return "100%"
	case Ratio200:
		return "200%"
	case Ratio300:
		return "300%"
	case Ratio400:
		return "400%"
	}
	return "ratio(" + utoa(uint32(r)) + ")"
}

func (p EdgeProcess) String() string {
	if p == EdgeExtract {
		return "extract"
	}
	return "enhance"
}
