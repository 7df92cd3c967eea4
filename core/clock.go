package core

// Fixed timebases
const (
	MasterClockHz = 125000000 // system clock feeding the PIO sequencer
	ADCClockHz    = 48000000  // USB PLL clock feeding the ADC

	// SensorClockHz is the default sensor master clock (XCK)
	SensorClockHz = 37500

	// SensorClockMultiplier is the number of sequencer cycles per XCK period
	SensorClockMultiplier = 2
)

// ClockDivider is a 16.8 fixed-point divider, the format used by both the
// PIO state machines and the ADC.
type ClockDivider struct {
	Int  uint16
	Frac uint8
}

// fixed returns the divider in 1/256 units
func (d ClockDivider) fixed() uint64 {
	return uint64(d.Int)<<8 | uint64(d.Frac)
}

// Hz returns the output frequency for a given source clock
func (d ClockDivider) Hz(sourceHz uint32) uint32 {
	f := d.fixed()
	if f == 0 {
		return 0
	}
	return uint32((uint64(sourceHz)<<8 + f/2) / f)
}

// DividerFor returns the divider nearest to sourceHz/targetHz.
// Results below 1.0 clamp to 1.0, results past the register range clamp to the
// largest divider.
func DividerFor(sourceHz, targetHz uint32) ClockDivider {
	if targetHz == 0 {
		return ClockDivider{Int: 0xffff, Frac: 0xff}
	}
	q := (uint64(sourceHz)<<8 + uint64(targetHz)/2) / uint64(targetHz)
	return dividerFromFixed(q)
}

// SequencerDivider is the PIO divider producing an XCK of targetHz
func SequencerDivider(targetHz uint32) ClockDivider {
	return DividerFor(MasterClockHz, targetHz*SensorClockMultiplier)
}

// SamplerDivider is the ADC divider producing targetHz samples per second.
// The ADC takes one sample every (1 + divider) cycles, and a conversion
// needs at least 96 cycles; faster requests free-run the converter.
func SamplerDivider(targetHz uint32) ClockDivider {
	if targetHz == 0 {
		return ClockDivider{Int: 0xffff, Frac: 0xff}
	}
	q := (uint64(ADCClockHz)<<8 + uint64(targetHz)/2) / uint64(targetHz)
	if q <= 96<<8 {
		return ClockDivider{}
	}
	return dividerFromFixed(q - 1<<8)
}

func dividerFromFixed(q uint64) ClockDivider {
	if q < 1<<8 {
		q = 1 << 8
	}
	if q > 0xffffff {
		q = 0xffffff
	}
	return ClockDivider{Int: uint16(q >> 8), Frac: uint8(q)}
}

// SampleHz returns the ADC sample rate produced by an ADC divider
func (d ClockDivider) SampleHz() uint32 {
	if d.fixed() == 0 {
		return ADCClockHz / 96
	}
	f := d.fixed() + 1<<8
	return uint32((uint64(ADCClockHz)<<8 + f/2) / f)
}
