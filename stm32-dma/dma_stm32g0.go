//go:build stm32g0

package dma

import "unsafe"

// G0: per-channel register blocks, 5 channels, one controller, request
// routing via the DMAMUX block.
//
// Some G0 variants carry channels 6 and 7 and a second controller; those are
// not wired up here.

type dmaHW = *dmaBlockHW

// NumChannels is the number of channels per controller on this family.
const NumChannels = 5

const (
	dma1Base   = 0x4002_0000
	dmamuxBase = 0x4002_0800

	rccAHBRSTR = 0x4002_1000 + 0x28
	rccAHBENR  = 0x4002_1000 + 0x38
)

var dmamux = (*muxHW)(unsafe.Pointer(uintptr(dmamuxBase)))

// DMA controller handle.
var DMA1 = &DMA{hw: (*dmaBlockHW)(unsafe.Pointer(uintptr(dma1Base))), mux: dmamux}

// EnableClock enables and resets the controller on the AHB bus. Must be
// called once before the controller is touched.
func (d *DMA) EnableClock() {
	const bit = uint32(1 << 0) // DMA1EN
	enr := (*reg32)(unsafe.Pointer(uintptr(rccAHBENR)))
	rstr := (*reg32)(unsafe.Pointer(uintptr(rccAHBRSTR)))
	enr.SetBits(bit)
	rstr.SetBits(bit)
	rstr.ClearBits(bit)
}

// SelectInput binds the channel to a peripheral request source. Afterwards
// only that source's request line triggers transfers on the channel.
func (ch Channel) SelectInput(in Input) {
	ch.dma.mux.selectRequest(ch.dma.muxOff+ch.n-1, uint8(in))
}
