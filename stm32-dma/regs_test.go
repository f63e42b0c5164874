//go:build !stm32f3 && !stm32g0 && !stm32g4 && !stm32l4

package dma

import (
	"testing"
	"unsafe"
)

func TestFlatResolver(t *testing.T) {
	hw := &dmaFlatHW{}
	want := []chanHW{
		{&hw.ccr1, &hw.cndtr1, &hw.cpar1, &hw.cmar1},
		{&hw.ccr2, &hw.cndtr2, &hw.cpar2, &hw.cmar2},
		{&hw.ccr3, &hw.cndtr3, &hw.cpar3, &hw.cmar3},
		{&hw.ccr4, &hw.cndtr4, &hw.cpar4, &hw.cmar4},
		{&hw.ccr5, &hw.cndtr5, &hw.cpar5, &hw.cmar5},
		{&hw.ccr6, &hw.cndtr6, &hw.cpar6, &hw.cmar6},
		{&hw.ccr7, &hw.cndtr7, &hw.cpar7, &hw.cmar7},
		{&hw.ccr8, &hw.cndtr8, &hw.cpar8, &hw.cmar8},
	}
	for i, w := range want {
		if got := hw.channel(uint8(i + 1)); got != w {
			t.Errorf("channel %d resolved to the wrong registers", i+1)
		}
	}
}

func TestBlockResolver(t *testing.T) {
	hw := &dmaBlockHW{}
	for n := uint8(1); n <= 8; n++ {
		b := &hw.ch[n-1]
		want := chanHW{&b.cr, &b.ndtr, &b.par, &b.mar}
		if got := hw.channel(n); got != want {
			t.Errorf("channel %d resolved to the wrong block", n)
		}
	}
}

// The two namings must describe the same silicon: same register offsets,
// channel stride and flag registers.
func TestTopologiesShareLayout(t *testing.T) {
	var flat dmaFlatHW
	var block dmaBlockHW
	if unsafe.Offsetof(flat.ifcr) != unsafe.Offsetof(block.ifcr) {
		t.Error("flag register offsets differ")
	}
	if unsafe.Offsetof(flat.ccr1) != unsafe.Offsetof(block.ch) {
		t.Error("first channel offsets differ")
	}
	stride := unsafe.Offsetof(flat.ccr2) - unsafe.Offsetof(flat.ccr1)
	if stride != unsafe.Sizeof(block.ch[0]) {
		t.Errorf("channel stride %d differs from block size %d", stride, unsafe.Sizeof(block.ch[0]))
	}
	if unsafe.Offsetof(flat.cselr) != unsafe.Offsetof(block.ch)+8*unsafe.Sizeof(block.ch[0]) {
		t.Error("CSELR not at the word after the channel array")
	}
}

func TestCSELRSelect(t *testing.T) {
	hw := &dmaFlatHW{}
	hw.cselr.v = 0x0000_0f0f // channels 1 and 3 already routed
	hw.selectRequest(3, 0b0010)
	if got := hw.cselr.Get(); got != 0x0000_020f {
		t.Errorf("CSELR %#x, want %#x", got, 0x0000_020f)
	}
}

func TestMuxSelect(t *testing.T) {
	mux := &muxHW{}
	mux.selectRequest(2, uint8(USART2Rx))
	for i := range mux.ccr {
		want := uint32(0)
		if i == 2 {
			want = uint32(USART2Rx)
		}
		if got := mux.ccr[i].Get(); got != want {
			t.Errorf("mux channel %d request id %d, want %d", i, got, want)
		}
	}
}

func TestSelectInputRouting(t *testing.T) {
	d1 := newHostDMA()
	d2 := &DMA{hw: &dmaFlatHW{}, mux: d1.mux, muxOff: 8}

	d1.Channel(1).SelectInput(SPI1Rx)
	d2.Channel(1).SelectInput(SPI1Tx)

	if got := d1.mux.ccr[0].Get(); got != uint32(SPI1Rx) {
		t.Errorf("first controller routed to %d", got)
	}
	if got := d1.mux.ccr[8].Get(); got != uint32(SPI1Tx) {
		t.Errorf("second controller routed to %d", got)
	}
}
