package core

// LoadWordCount is the number of 32-bit words shifted into the sensor per load
const LoadWordCount = 3

// LoadWords is the descriptor in the sensor's serial load order, shifted out
// MSB first. Each register is sent as an 11-bit group: a 3-bit address followed
// by its 8-bit value. Eight groups take 88 bits; the last 8 bits are padding.
type LoadWords [LoadWordCount]uint32

// Address bits of each 11-bit group, at their fixed positions in the stream
const (
	loadTag0 = 0x00040100 // addresses 0, 1, 2
	loadTag1 = 0x30080140 // addresses 3, 4, 5
	loadTag2 = 0x30070000 // addresses 6, 7
)

// Pack redistributes the raw descriptor bytes into the load words.
// Value bits that fall past bit 31 are truncated by the 32-bit shift.
func Pack(raw RawRegisters) LoadWords {
	return LoadWords{
		loadTag0 | uint32(raw[0])<<21 | uint32(raw[1])<<10 | uint32(raw[2])>>1,
		loadTag1 | uint32(raw[2])<<31 | uint32(raw[3])<<20 | uint32(raw[4])<<9 | uint32(raw[5])>>2,
		loadTag2 | uint32(raw[5]&0x3f)<<30 | uint32(raw[6])<<19 | uint32(raw[7])<<8,
	}
}

// String formats the words as hex for debug output
func (w LoadWords) String() string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 0, LoadWordCount*11)
	for i, v := range w {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, '0', 'x')
		for shift := 28; shift >= 0; shift -= 4 {
			buf = append(buf, digits[v>>uint(shift)&0xf])
		}
	}
	return string(buf)
}
