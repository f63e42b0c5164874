package dma

// chanHW is the uniform per-channel register view handed out by the topology
// resolvers below. Everything above this layer works only with chanHW, no
// matter how the family names or groups the underlying registers.
type chanHW struct {
	ccr   *reg32 // configuration and enable
	cndtr *reg32 // element count, 16 bit, decremented by hardware
	cpar  *reg32 // peripheral address
	cmar  *reg32 // memory address
}

// dmaFlatHW is the register layout of families whose reference manuals name
// the channel registers as numbered flat registers (CCR1, CNDTR1, ... CMAR8).
// The channel stride is five words, the word after CMARx is reserved. The
// word at 0xA8 is the CSELR on families that route requests through it and
// reserved elsewhere.
type dmaFlatHW struct {
	isr  reg32
	ifcr reg32

	ccr1   reg32
	cndtr1 reg32
	cpar1  reg32
	cmar1  reg32
	_      reg32
	ccr2   reg32
	cndtr2 reg32
	cpar2  reg32
	cmar2  reg32
	_      reg32
	ccr3   reg32
	cndtr3 reg32
	cpar3  reg32
	cmar3  reg32
	_      reg32
	ccr4   reg32
	cndtr4 reg32
	cpar4  reg32
	cmar4  reg32
	_      reg32
	ccr5   reg32
	cndtr5 reg32
	cpar5  reg32
	cmar5  reg32
	_      reg32
	ccr6   reg32
	cndtr6 reg32
	cpar6  reg32
	cmar6  reg32
	_      reg32
	ccr7   reg32
	cndtr7 reg32
	cpar7  reg32
	cmar7  reg32
	_      reg32
	ccr8   reg32
	cndtr8 reg32
	cpar8  reg32
	cmar8  reg32
	_      reg32

	cselr reg32
}

// channel resolves the registers of 1-based channel n. n is validated by
// DMA.Channel; out-of-range values cannot occur on a correctly built target.
func (hw *dmaFlatHW) channel(n uint8) chanHW {
	switch n {
	case 1:
		return chanHW{&hw.ccr1, &hw.cndtr1, &hw.cpar1, &hw.cmar1}
	case 2:
		return chanHW{&hw.ccr2, &hw.cndtr2, &hw.cpar2, &hw.cmar2}
	case 3:
		return chanHW{&hw.ccr3, &hw.cndtr3, &hw.cpar3, &hw.cmar3}
	case 4:
		return chanHW{&hw.ccr4, &hw.cndtr4, &hw.cpar4, &hw.cmar4}
	case 5:
		return chanHW{&hw.ccr5, &hw.cndtr5, &hw.cpar5, &hw.cmar5}
	case 6:
		return chanHW{&hw.ccr6, &hw.cndtr6, &hw.cpar6, &hw.cmar6}
	case 7:
		return chanHW{&hw.ccr7, &hw.cndtr7, &hw.cpar7, &hw.cmar7}
	case 8:
		return chanHW{&hw.ccr8, &hw.cndtr8, &hw.cpar8, &hw.cmar8}
	}
	panic(badChannel)
}

func (hw *dmaFlatHW) flags() (isr, ifcr *reg32) {
	return &hw.isr, &hw.ifcr
}

// selectRequest writes the 4-bit request code for channel n into the CSELR.
// After this only the selected peripheral's request line triggers the channel.
func (hw *dmaFlatHW) selectRequest(n uint8, code uint8) {
	hw.cselr.ReplaceBits(uint32(code), 0xf, (n-1)*4)
}

// dmaBlockHW is the register layout of families whose reference manuals group
// the channel registers into one block per channel (CHx.CR, CHx.NDTR, ...).
// The memory layout is the same as dmaFlatHW, only the naming differs.
type dmaBlockHW struct {
	isr  reg32
	ifcr reg32
	ch   [8]chanBlock
}

type chanBlock struct {
	cr   reg32
	ndtr reg32
	par  reg32
	mar  reg32
	_    reg32
}

func (hw *dmaBlockHW) channel(n uint8) chanHW {
	b := &hw.ch[n-1]
	return chanHW{&b.cr, &b.ndtr, &b.par, &b.mar}
}

func (hw *dmaBlockHW) flags() (isr, ifcr *reg32) {
	return &hw.isr, &hw.ifcr
}

// muxHW is the request multiplexer of families that route peripheral request
// lines through a separate DMAMUX block. Mux channel i serves DMA channel
// i+1 of the first controller, with the second controller's channels mapped
// behind it.
type muxHW struct {
	ccr [16]reg32
}

const muxReqIDMask = 0x7f

// selectRequest binds 0-based mux channel i to request line id.
func (hw *muxHW) selectRequest(i uint8, id uint8) {
	hw.ccr[i].ReplaceBits(uint32(id), muxReqIDMask, 0)
}
