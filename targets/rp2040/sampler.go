//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"gbcam/core"
	"machine"
	"runtime/volatile"
	"unsafe"
)

const (
	dmaChannelCount  = 12
	dmaChannelStride = 0x40 // register block size per channel
	dreqADC          = 36   // DREQ_ADC pacing signal
)

var errNoDMAChannel = errors.New("sampler: no free DMA channel")

// DMA channel allocation tracking
var dmaAllocations [dmaChannelCount]bool

// allocateDMA claims the lowest free DMA channel
func allocateDMA() (uint8, bool) {
	for ch := range dmaAllocations {
		if !dmaAllocations[ch] {
			dmaAllocations[ch] = true
			return uint8(ch), true
		}
	}
	return 0, false
}

// dmaChannel represents one DMA channel's trigger-free register aliases
type dmaChannel struct {
	READ_ADDR   volatile.Register32
	WRITE_ADDR  volatile.Register32
	TRANS_COUNT volatile.Register32
	CTRL_TRIG   volatile.Register32
}

func dmaChannelAt(ch uint8) *dmaChannel {
	base := uintptr(unsafe.Pointer(&rp.DMA.CH0_READ_ADDR))
	return (*dmaChannel)(unsafe.Pointer(base + uintptr(ch)*dmaChannelStride))
}

// ADCSampler implements core.Sampler: the ADC free-runs on VOUT and one DMA
// channel moves each 8-bit sample from the ADC FIFO into the frame buffer.
type ADCSampler struct {
	ch  uint8
	dma *dmaChannel
	dst []byte // keeps the armed buffer reachable
}

// NewADCSampler claims a DMA channel and configures the ADC input
func NewADCSampler() (*ADCSampler, error) {
	ch, ok := allocateDMA()
	if !ok {
		return nil, errNoDMAChannel
	}

	machine.InitADC()
	adc := machine.ADC{Pin: pinVout}
	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return nil, err
	}

	return &ADCSampler{
		ch:  ch,
		dma: dmaChannelAt(ch),
	}, nil
}

// SetDivider selects the VOUT input, disables the temperature sensor and
// round-robin, and sets the sample clock. The FIFO delivers one 8-bit sample
// per DMA request.
func (s *ADCSampler) SetDivider(div core.ClockDivider) {
	rp.ADC.CS.ClearBits(rp.ADC_CS_START_MANY | rp.ADC_CS_TS_EN | rp.ADC_CS_RROBIN_Msk)
	rp.ADC.CS.ReplaceBits(uint32(adcInput)<<rp.ADC_CS_AINSEL_Pos, rp.ADC_CS_AINSEL_Msk, 0)

	rp.ADC.DIV.Set(uint32(div.Int)<<rp.ADC_DIV_INT_Pos | uint32(div.Frac)<<rp.ADC_DIV_FRAC_Pos)

	rp.ADC.FCS.Set(rp.ADC_FCS_EN |
		rp.ADC_FCS_DREQ_EN |
		rp.ADC_FCS_SHIFT | // 8-bit samples
		1<<rp.ADC_FCS_THRESH_Pos)

	s.drainFIFO()
}

// Arm programs and enables the transfer. Writing CTRL_TRIG starts the channel;
// it only moves data once the ADC raises DREQ.
func (s *ADCSampler) Arm(dst []byte) {
	s.drainFIFO()
	s.dst = dst

	s.dma.READ_ADDR.Set(uint32(uintptr(unsafe.Pointer(&rp.ADC.FIFO))))
	s.dma.WRITE_ADDR.Set(uint32(uintptr(unsafe.Pointer(&dst[0]))))
	s.dma.TRANS_COUNT.Set(uint32(len(dst)))
	s.dma.CTRL_TRIG.Set(
		rp.DMA_CH0_CTRL_TRIG_EN |
			// Transfer single bytes.
			rp.DMA_CH0_CTRL_TRIG_DATA_SIZE_SIZE_BYTE<<rp.DMA_CH0_CTRL_TRIG_DATA_SIZE_Pos |
			// Fixed read from the FIFO, incrementing write into the buffer.
			rp.DMA_CH0_CTRL_TRIG_INCR_WRITE |
			// Don't chain.
			uint32(s.ch)<<rp.DMA_CH0_CTRL_TRIG_CHAIN_TO_Pos |
			// Pace transfers by the ADC FIFO.
			dreqADC<<rp.DMA_CH0_CTRL_TRIG_TREQ_SEL_Pos,
	)
}

// Run enables or disables free-running conversion
func (s *ADCSampler) Run(on bool) {
	if on {
		rp.ADC.CS.SetBits(rp.ADC_CS_START_MANY)
	} else {
		rp.ADC.CS.ClearBits(rp.ADC_CS_START_MANY)
	}
}

// Abort stops conversion and cancels the transfer. Safe from the edge IRQ.
func (s *ADCSampler) Abort() {
	rp.ADC.CS.ClearBits(rp.ADC_CS_START_MANY)

	s.dma.CTRL_TRIG.ClearBits(rp.DMA_CH0_CTRL_TRIG_EN)
	rp.DMA.CHAN_ABORT.Set(1 << s.ch)
	for rp.DMA.CHAN_ABORT.Get() != 0 {
	}

	s.drainFIFO()
}

// drainFIFO discards stale samples
func (s *ADCSampler) drainFIFO() {
	for !rp.ADC.FCS.HasBits(rp.ADC_FCS_EMPTY) {
		rp.ADC.FIFO.Get()
	}
}

var _ core.Sampler = (*ADCSampler)(nil)
