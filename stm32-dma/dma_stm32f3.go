//go:build stm32f3

package dma

import "unsafe"

// F3: per-channel register blocks, 7 channels per controller. Request lines
// are hard-wired per channel (see Input.DMA1Channel), so there is no
// SelectInput on this family.

type dmaHW = *dmaBlockHW

// NumChannels is the number of channels per controller on this family.
const NumChannels = 7

const (
	dma1Base = 0x4002_0000
	dma2Base = 0x4002_0400

	rccAHBENR = 0x4002_1000 + 0x14
)

// DMA controller handles.
var (
	DMA1 = &DMA{hw: (*dmaBlockHW)(unsafe.Pointer(uintptr(dma1Base)))}
	DMA2 = &DMA{hw: (*dmaBlockHW)(unsafe.Pointer(uintptr(dma2Base)))}
)

// EnableClock enables the controller clock on the AHB bus. Must be called
// once before the controller is touched. This family has no DMA reset bit.
func (d *DMA) EnableClock() {
	bit := uint32(1 << 0) // DMA1EN
	if d == DMA2 {
		bit = 1 << 1
	}
	enr := (*reg32)(unsafe.Pointer(uintptr(rccAHBENR)))
	enr.SetBits(bit)
}
