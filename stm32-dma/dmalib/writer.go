package dmalib

import (
	"unsafe"

	dma "github.com/tinygo-org/dma/stm32-dma"
)

// Writer streams memory buffers to a fixed peripheral data register,
// one-shot per Write call. The caller must have bound the channel's request
// source beforehand and must keep each buffer referenced until the call
// returns.
type Writer struct {
	ch         dma.Channel
	periphAddr uint32
	cfg        dma.ChannelConfig
}

// NewWriter claims the channel and returns a writer targeting the data
// register at periphAddr.
func NewWriter(ch dma.Channel, periphAddr uint32) *Writer {
	ch.TryClaim() // Channel should be claimed beforehand, we just guarantee it's claimed.
	cfg := dma.DefaultChannelConfig()
	return &Writer{ch: ch, periphAddr: periphAddr, cfg: cfg}
}

// Write8 moves p to the peripheral register byte by byte, paced by the
// peripheral's request line, and blocks until the transfer completes or
// fails.
func (w *Writer) Write8(p []byte) error {
	if len(p) == 0 || len(p) > maxCount {
		return errBufLen
	}
	return w.run(dma.Transfer{
		PeriphAddr: w.periphAddr,
		MemAddr:    uint32(uintptr(unsafe.Pointer(&p[0]))),
		Count:      uint16(len(p)),
		Dir:        dma.MemToPeriph,
		PeriphSize: dma.Size8,
		MemSize:    dma.Size8,
	})
}

// Write16 moves p halfword by halfword, for 16-bit data registers like a
// DAC's.
func (w *Writer) Write16(p []uint16) error {
	if len(p) == 0 || len(p) > maxCount {
		return errBufLen
	}
	return w.run(dma.Transfer{
		PeriphAddr: w.periphAddr,
		MemAddr:    uint32(uintptr(unsafe.Pointer(&p[0]))),
		Count:      uint16(len(p)),
		Dir:        dma.MemToPeriph,
		PeriphSize: dma.Size16,
		MemSize:    dma.Size16,
	})
}

// Close stops the channel and releases it.
func (w *Writer) Close() {
	w.ch.Stop()
	w.ch.Unclaim()
}

func (w *Writer) run(t dma.Transfer) error {
	w.ch.Arm(t, w.cfg)
	retries := timeoutRetries
	for retries > 0 {
		if w.ch.IsTransferError() {
			// The flag must be cleared before the channel can be
			// enabled again.
			w.ch.ClearInterrupt(dma.TransferError)
			return errTransfer
		}
		if w.ch.IsTransferComplete() {
			w.ch.ClearInterrupt(dma.TransferComplete)
			return nil
		}
		gosched()
		retries--
	}
	w.ch.Stop()
	return errTimeout
}
