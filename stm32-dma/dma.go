// Package dma drives the DMA controllers found on several STM32 families
// (F3, L4, G0, G4). It owns the channel configuration and control protocol:
// the register write ordering the hardware mandates, the disable-and-poll
// handshakes around read-only-while-enabled fields, and the memory barriers
// that keep buffer writes and the arming register write in order.
//
// The package holds no software-side channel state. A Channel is only a
// name; everything observable lives in the live hardware registers and is
// re-read on each call. Callers own the transfer buffers: a buffer must
// stay valid and must not be moved by the runtime while a transfer that
// references it is armed.
//
// The controller clock must be enabled (see EnableClock) before any other
// method is called. Interrupt handlers must not re-arm a channel that
// program flow is concurrently configuring; the disable-and-poll handshake
// cannot protect against that on its own.
package dma

// Panic messages for conditions that are build-time impossibilities on a
// correctly configured target.
const (
	badChannel   = "dma: invalid channel"
	badInterrupt = "dma: invalid interrupt"
)

// DMA represents one DMA controller.
type DMA struct {
	hw dmaHW
	// mux is the request multiplexer on families that have one, nil on
	// families that route requests through the CSELR or fixed lines.
	mux *muxHW
	// muxOff is the controller's first mux channel
	muxOff uint8
	// Bitmask of claimed channels, bit 0 = channel 1.
	claimed uint8
}

// Channel returns a handle for 1-based channel n.
func (d *DMA) Channel(n uint8) Channel {
	if n < 1 || n > NumChannels {
		panic(badChannel)
	}
	return Channel{dma: d, n: n}
}

// ClaimChannel returns an unclaimed channel of the controller, or false if
// all of them are taken. Claiming is bookkeeping between drivers that share
// the controller; the hardware does not know about it.
func (d *DMA) ClaimChannel() (ch Channel, ok bool) {
	for n := uint8(1); n <= NumChannels; n++ {
		ch = d.Channel(n)
		if ch.TryClaim() {
			return ch, true
		}
	}
	return Channel{}, false
}

// Channel identifies one channel of one controller. The zero value is not
// valid; obtain channels from DMA.Channel.
type Channel struct {
	dma *DMA
	n   uint8
}

// Index returns the 1-based channel number.
func (ch Channel) Index() uint8 { return ch.n }

// DMA returns the controller the channel belongs to.
func (ch Channel) DMA() *DMA { return ch.dma }

// IsClaimed reports whether the channel is claimed by other code and should
// not be used.
func (ch Channel) IsClaimed() bool { return ch.dma.claimed&(1<<(ch.n-1)) != 0 }

// TryClaim claims the channel for the caller and reports whether it was
// unclaimed before. Either way the channel is claimed afterwards.
func (ch Channel) TryClaim() bool {
	if ch.IsClaimed() {
		return false
	}
	ch.dma.claimed |= 1 << (ch.n - 1)
	return true
}

// Unclaim releases the channel for use by other code.
func (ch Channel) Unclaim() { ch.dma.claimed &^= 1 << (ch.n - 1) }

func (ch Channel) regs() chanHW { return ch.dma.hw.channel(ch.n) }

// Arm configures the channel for the transfer and enables it, following the
// sequence the reference manual mandates: peripheral address, memory
// address, element count, then a single combined control word that also sets
// the transfer-complete interrupt enable and the enable bit last. If the
// channel is still enabled it is disabled first and the enable bit is polled
// clear, since the configuration fields are read-only while EN=1.
//
// Arming does not start a move by itself; the channel serves requests from
// the bound peripheral once they arrive. Malformed configurations are not
// rejected: hardware answers them with silent inaction or a later
// transfer-error flag, never synchronously.
//
// After a transfer error the hardware clears EN itself and refuses to set it
// again until the error flag is cleared; callers re-arming after an error
// must ClearInterrupt(TransferError) first.
func (ch Channel) Arm(t Transfer, cfg ChannelConfig) {
	hw := ch.regs()

	hw.cpar.Set(t.PeriphAddr)
	hw.cmar.Set(t.MemAddr)
	hw.cndtr.Set(uint32(t.Count))

	// Keep the stores that populated the memory buffer ahead of the
	// volatile control write that lets hardware start consuming it.
	memFence()

	disableAndWait(hw.ccr)

	if cfg.Circular {
		// Circular mode must not be combined with memory-to-memory;
		// hardware misbehaves unless MEM2MEM is cleared first.
		hw.ccr.ClearBits(ccrMEM2MEM)
	}

	v := hw.ccr.Get() &^ ccrCfgMask
	v |= uint32(cfg.Priority) << ccrPLPos
	if t.Dir == MemToPeriph {
		v |= ccrDIR
	}
	if cfg.Circular {
		v |= ccrCIRC
	}
	if cfg.PeriphIncr {
		v |= ccrPINC
	}
	if cfg.MemIncr {
		v |= ccrMINC
	}
	v |= uint32(t.PeriphSize) << ccrPSIZEPos
	v |= uint32(t.MemSize) << ccrMSIZEPos
	// One write for the configuration, TCIE and EN: the fields become
	// read-only the instant EN is set.
	hw.ccr.Set(v | ccrTCIE | ccrEN)
}

// Stop disables the channel and waits until hardware confirms it. The wait
// is mandatory: the controller cannot resume a suspended bus transfer, and
// until EN reads back clear the channel may still be moving data. Pending
// status flags are left untouched; clearing them is the caller's business.
func (ch Channel) Stop() {
	ccr := ch.regs().ccr
	ccr.ClearBits(ccrEN)
	for ccr.Get()&ccrEN != 0 {
	}
	// Don't let subsequent reads assume final buffer contents before the
	// hardware acknowledged the stop.
	memFence()
}

// Enabled reports whether the channel's enable bit is set. Note that
// hardware clears EN itself on a transfer error.
func (ch Channel) Enabled() bool {
	return ch.regs().ccr.Get()&ccrEN != 0
}

// Remaining reads the number of elements left in the current transfer.
// In circular mode it reloads to the programmed count on exhaustion.
func (ch Channel) Remaining() uint16 {
	return uint16(ch.regs().cndtr.Get())
}

// IsTransferComplete reports the channel's transfer-complete flag. The read
// has no side effect and may be polled; the flag stays set until cleared
// with ClearInterrupt.
func (ch Channel) IsTransferComplete() bool {
	return ch.flag(TransferComplete)
}

// IsTransferError reports the channel's transfer-error flag. While it is
// set, the channel cannot be re-enabled.
func (ch Channel) IsTransferError() bool {
	return ch.flag(TransferError)
}

// IsHalfTransfer reports the channel's half-transfer flag.
func (ch Channel) IsHalfTransfer() bool {
	return ch.flag(HalfTransfer)
}

func (ch Channel) flag(i Interrupt) bool {
	isr, _ := ch.dma.hw.flags()
	return isr.Get()&i.flagBit(ch.n) != 0
}

// EnableInterrupt enables the interrupt for one event kind. The enable bits
// share the control register with the read-only-while-enabled fields, so an
// armed channel is disabled for the update and re-enabled afterwards. The
// caller must ensure no interrupt handler re-arms the channel during that
// window.
func (ch Channel) EnableInterrupt(i Interrupt) {
	ccr := ch.regs().ccr
	wasEnabled := ccr.Get()&ccrEN != 0
	if wasEnabled {
		disableAndWait(ccr)
	}
	ccr.SetBits(i.ccrBit())
	if wasEnabled {
		ccr.SetBits(ccrEN)
	}
}

// DisableInterrupt disables the interrupt for one event kind, with the same
// disable-and-restore handshake as EnableInterrupt.
func (ch Channel) DisableInterrupt(i Interrupt) {
	ccr := ch.regs().ccr
	wasEnabled := ccr.Get()&ccrEN != 0
	if wasEnabled {
		disableAndWait(ccr)
	}
	ccr.ClearBits(i.ccrBit())
	if wasEnabled {
		ccr.SetBits(ccrEN)
	}
}

// ClearInterrupt acknowledges one pending event flag. The clear register is
// write-one-to-clear, so this is a plain store of the single flag bit, never
// a read-modify-write.
func (ch Channel) ClearInterrupt(i Interrupt) {
	_, ifcr := ch.dma.hw.flags()
	ifcr.Set(i.flagBit(ch.n))
}

// ClearInterrupts acknowledges all pending event flags of the channel via
// the global flag bit.
func (ch Channel) ClearInterrupts() {
	_, ifcr := ch.dma.hw.flags()
	ifcr.Set(isrGIF << (uint32(ch.n-1) * 4))
}

// disableAndWait clears EN if it is set and polls until hardware confirms,
// which is the precondition for writing any of the read-only-while-enabled
// control fields. It is the one place both Arm and the interrupt-enable
// handshake funnel through.
func disableAndWait(ccr *reg32) {
	if ccr.Get()&ccrEN == 0 {
		return
	}
	ccr.ClearBits(ccrEN)
	for ccr.Get()&ccrEN != 0 {
	}
}
