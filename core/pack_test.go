package core

import "testing"

func TestPackDefaults(t *testing.T) {
	raw := RawRegisters{0xA8, 0x04, 0x00, 0x3F, 0x01, 0x00, 0x01, 0x00}
	want := LoadWords{0x15041100, 0x33F80340, 0x300F0000}

	got := Pack(raw)
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if Pack(DefaultRegisters.Raw()) != want {
		t.Error("Default registers do not pack to the power-on load words")
	}
}

func TestPackIsPure(t *testing.T) {
	raw := RawRegisters{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
	first := Pack(raw)
	second := Pack(raw)
	if first != second {
		t.Errorf("Pack not idempotent: %s vs %s", first, second)
	}
}

func TestPackKeepsAddressBits(t *testing.T) {
	tags := LoadWords{loadTag0, loadTag1, loadTag2}
	inputs := []RawRegisters{
		{},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		{0x55, 0xaa, 0x55, 0xaa, 0x55, 0xaa, 0x55, 0xaa},
	}
	for _, raw := range inputs {
		words := Pack(raw)
		for i := range words {
			if words[i]&tags[i] != tags[i] {
				t.Errorf("Word %d of % x lost address bits: %#08x", i, raw[:], words[i])
			}
		}
	}
}

func TestPackValuePositions(t *testing.T) {
	// Only the exposure low byte set: it lands at bits 20..27 of word 1.
	var raw RawRegisters
	raw[3] = 0xff
	words := Pack(raw)
	if words[1] != loadTag1|0x0ff00000 {
		t.Errorf("Unexpected word 1 %#08x", words[1])
	}
	if words[0] != loadTag0 || words[2] != loadTag2 {
		t.Errorf("Exposure low leaked into other words: %s", words)
	}
}

func TestLoadWordsString(t *testing.T) {
	w := LoadWords{0x15041100, 0x33F80340, 0x300F0000}
	if got := w.String(); got != "0x15041100 0x33f80340 0x300f0000" {
		t.Errorf("Unexpected formatting %q", got)
	}
}
