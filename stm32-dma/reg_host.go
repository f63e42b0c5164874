//go:build !stm32f3 && !stm32g0 && !stm32g4 && !stm32l4

package dma

// Host build: a software register model instead of MMIO, so the channel
// protocol can be unit tested with go test. The model stores register values
// and records every write in program order; polling loops terminate because
// a stored value reads back immediately. The exported simulation helpers at
// the bottom let tests outside this package play the hardware's role.

type dmaHW = *dmaFlatHW

// NumChannels is the number of channels of the modeled controller.
const NumChannels = 8

// DMA controller handles over the register model.
var (
	DMA1 = newHostDMA()
	DMA2 = newHostDMA()
)

func init() {
	// Both controllers share the mux, like the silicon does.
	DMA2.mux = DMA1.mux
	DMA2.muxOff = 8
}

// newHostDMA returns an independent controller model.
func newHostDMA() *DMA {
	d := &DMA{hw: &dmaFlatHW{}, mux: &muxHW{}}
	isr, ifcr := d.hw.flags()
	ifcr.clears = isr
	return d
}

// EnableClock is a no-op on the host; the clock tree is not modeled.
func (d *DMA) EnableClock() {}

// SelectInput binds the channel to a peripheral request source. The host
// models the multiplexed routing flavor.
func (ch Channel) SelectInput(in Input) {
	ch.dma.mux.selectRequest(ch.dma.muxOff+ch.n-1, uint8(in))
}

// reg32 models a 32-bit MMIO register, mirroring the API subset of
// runtime/volatile.Register32 that the driver uses. A register with a
// non-nil clears target is write-one-to-clear: stores clear the written
// flags in the target and the register itself reads as zero, like the IFCR.
type reg32 struct {
	v      uint32
	log    *writeLog
	clears *reg32
}

func (r *reg32) Get() uint32 { return r.v }

func (r *reg32) Set(v uint32) {
	if r.log != nil {
		r.log.writes = append(r.log.writes, regWrite{r, v})
	}
	if r.clears != nil {
		m := v
		for g := 0; g < 32; g += 4 {
			// The global flag bit clears the channel's whole group.
			if v&(isrGIF<<g) != 0 {
				m |= 0xf << g
			}
		}
		r.clears.v &^= m
		return
	}
	r.v = v
}

func (r *reg32) SetBits(bits uint32) { r.Set(r.Get() | bits) }

func (r *reg32) ClearBits(bits uint32) { r.Set(r.Get() &^ bits) }

func (r *reg32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | value<<pos)
}

func memFence() {}

// regWrite is one recorded register store.
type regWrite struct {
	reg *reg32
	val uint32
}

type writeLog struct {
	writes []regWrite
}

// attachLog records all subsequent writes to the controller's registers.
func (d *DMA) attachLog(log *writeLog) {
	for n := uint8(1); n <= NumChannels; n++ {
		hw := d.hw.channel(n)
		hw.ccr.log = log
		hw.cndtr.log = log
		hw.cpar.log = log
		hw.cmar.log = log
	}
	isr, ifcr := d.hw.flags()
	isr.log = log
	ifcr.log = log
	d.hw.cselr.log = log
	for i := range d.mux.ccr {
		d.mux.ccr[i].log = log
	}
}

// Simulation helpers, host only. They mutate the model directly, without
// going through the write log, the way hardware would.

// SetRemaining simulates transfer progress by overwriting the element count.
func (ch Channel) SetRemaining(n uint16) {
	ch.regs().cndtr.v = uint32(n)
}

// RaiseFlag simulates the hardware raising an event flag in the status
// register.
func (ch Channel) RaiseFlag(i Interrupt) {
	isr, _ := ch.dma.hw.flags()
	isr.v |= i.flagBit(ch.n)
}
