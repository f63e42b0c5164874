//go:build stm32l4

package dma

import "unsafe"

// L4: flat register naming, 7 channels per controller, request selection via
// the per-channel CSELR field.

type dmaHW = *dmaFlatHW

// NumChannels is the number of channels per controller on this family.
const NumChannels = 7

const (
	dma1Base = 0x4002_0000
	dma2Base = 0x4002_0400

	rccAHB1RSTR = 0x4002_1000 + 0x28
	rccAHB1ENR  = 0x4002_1000 + 0x48
)

// DMA controller handles.
var (
	DMA1 = &DMA{hw: (*dmaFlatHW)(unsafe.Pointer(uintptr(dma1Base)))}
	DMA2 = &DMA{hw: (*dmaFlatHW)(unsafe.Pointer(uintptr(dma2Base)))}
)

// EnableClock enables and resets the controller on the AHB1 bus. Must be
// called once before the controller is touched.
func (d *DMA) EnableClock() {
	bit := uint32(1 << 0) // DMA1EN
	if d == DMA2 {
		bit = 1 << 1
	}
	enr := (*reg32)(unsafe.Pointer(uintptr(rccAHB1ENR)))
	rstr := (*reg32)(unsafe.Pointer(uintptr(rccAHB1RSTR)))
	enr.SetBits(bit)
	rstr.SetBits(bit)
	rstr.ClearBits(bit)
}

// SelectInput binds the channel to a peripheral request source. Afterwards
// only that source's request line triggers transfers on the channel.
func (ch Channel) SelectInput(in Input) {
	ch.dma.hw.selectRequest(ch.n, in.cselCode())
}
