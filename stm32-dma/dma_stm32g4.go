//go:build stm32g4

package dma

import "unsafe"

// G4: flat register naming, 8 channels per controller, request routing via
// the shared DMAMUX block. DMA1 owns mux channels 0-7, DMA2 the next eight.

type dmaHW = *dmaFlatHW

// NumChannels is the number of channels per controller on this family.
const NumChannels = 8

const (
	dma1Base   = 0x4002_0000
	dma2Base   = 0x4002_0400
	dmamuxBase = 0x4002_0800

	rccAHB1RSTR = 0x4002_1000 + 0x28
	rccAHB1ENR  = 0x4002_1000 + 0x48
)

var dmamux = (*muxHW)(unsafe.Pointer(uintptr(dmamuxBase)))

// DMA controller handles.
var (
	DMA1 = &DMA{hw: (*dmaFlatHW)(unsafe.Pointer(uintptr(dma1Base))), mux: dmamux}
	DMA2 = &DMA{hw: (*dmaFlatHW)(unsafe.Pointer(uintptr(dma2Base))), mux: dmamux, muxOff: 8}
)

// EnableClock enables and resets the controller on the AHB1 bus. Must be
// called once before the controller is touched. The DMAMUX clock is enabled
// alongside, since request routing is useless without it.
func (d *DMA) EnableClock() {
	bit := uint32(1 << 0) // DMA1EN
	if d == DMA2 {
		bit = 1 << 1
	}
	enr := (*reg32)(unsafe.Pointer(uintptr(rccAHB1ENR)))
	rstr := (*reg32)(unsafe.Pointer(uintptr(rccAHB1RSTR)))
	enr.SetBits(bit | 1<<2) // DMAMUX1EN
	// Reset only the controller, the mux routing is shared.
	rstr.SetBits(bit)
	rstr.ClearBits(bit)
}

// SelectInput binds the channel to a peripheral request source. Afterwards
// only that source's request line triggers transfers on the channel.
func (ch Channel) SelectInput(in Input) {
	ch.dma.mux.selectRequest(ch.dma.muxOff+ch.n-1, uint8(in))
}
