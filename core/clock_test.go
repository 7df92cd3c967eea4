package core

import "testing"

func TestSequencerDividerDefault(t *testing.T) {
	div := SequencerDivider(SensorClockHz)
	if div.Int != 1666 || div.Frac != 171 {
		t.Errorf("Expected divider 1666+171/256, got %d+%d/256", div.Int, div.Frac)
	}

	// Achieved XCK is within 1 Hz of the request.
	hz := div.Hz(MasterClockHz) / SensorClockMultiplier
	if hz < SensorClockHz-1 || hz > SensorClockHz+1 {
		t.Errorf("Expected XCK near %d Hz, got %d", SensorClockHz, hz)
	}
}

func TestSamplerDividerDefault(t *testing.T) {
	div := SamplerDivider(SensorClockHz)
	if div.Int != 1279 || div.Frac != 0 {
		t.Errorf("Expected divider 1279+0/256, got %d+%d/256", div.Int, div.Frac)
	}
	if div.SampleHz() != SensorClockHz {
		t.Errorf("Expected %d samples/s, got %d", SensorClockHz, div.SampleHz())
	}
}

func TestSamplerDividerFreeRunning(t *testing.T) {
	div := SamplerDivider(500000)
	if div != (ClockDivider{}) {
		t.Errorf("Expected free-running divider, got %+v", div)
	}
	if div.SampleHz() != ADCClockHz/96 {
		t.Errorf("Expected %d samples/s, got %d", ADCClockHz/96, div.SampleHz())
	}
}

func TestDividerClamp(t *testing.T) {
	if d := DividerFor(MasterClockHz, MasterClockHz*4); d.Int != 1 || d.Frac != 0 {
		t.Errorf("Expected clamp to 1.0, got %+v", d)
	}
	if d := DividerFor(MasterClockHz, 1); d.Int != 0xffff || d.Frac != 0xff {
		t.Errorf("Expected clamp to max divider, got %+v", d)
	}
	if d := SequencerDivider(0); d.Int != 0xffff {
		t.Errorf("Expected max divider for 0 Hz, got %+v", d)
	}
}
