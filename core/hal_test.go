package core

// mockSampler records what the acquisition controller asks of the ADC/DMA pair
type mockSampler struct {
	div     ClockDivider
	dst     []byte
	arms    int
	running bool
	aborts  int
}

func (m *mockSampler) SetDivider(div ClockDivider) {
	m.div = div
}

func (m *mockSampler) Arm(dst []byte) {
	if m.dst != nil && m.running {
		panic("transfer re-armed while sampling into a live transfer")
	}
	m.dst = dst
	m.arms++
}

func (m *mockSampler) Run(on bool) {
	m.running = on
}

func (m *mockSampler) Abort() {
	m.running = false
	m.dst = nil
	m.aborts++
}

// fill writes a recognisable pattern into the armed transfer
func (m *mockSampler) fill(seed byte) {
	for i := range m.dst {
		m.dst[i] = seed + byte(i)
	}
}

// mockShiftClock records sequencer loads
type mockShiftClock struct {
	div   ClockDivider
	words []LoadWords
}

func (m *mockShiftClock) SetDivider(div ClockDivider) {
	m.div = div
}

func (m *mockShiftClock) Load(words LoadWords) {
	m.words = append(m.words, words)
}

type mockIndicator struct {
	toggles int
}

func (m *mockIndicator) Toggle() {
	m.toggles++
}
