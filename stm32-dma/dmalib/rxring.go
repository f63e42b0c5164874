package dmalib

import (
	"unsafe"

	dma "github.com/tinygo-org/dma/stm32-dma"
)

// RxRing drains a circular peripheral-to-memory transfer as a byte stream.
// The channel keeps writing incoming bytes round and round the buffer; the
// ring derives the hardware write position from the remaining-count register
// and hands out everything between its own read position and that point.
//
// The consumer must keep up: if the hardware laps the read position, a whole
// buffer length of data is silently lost. Size the buffer for the worst-case
// burst. The buffer must stay referenced for as long as the channel is
// armed.
type RxRing struct {
	ch  dma.Channel
	buf []byte
	rd  int
}

// NewRxRing claims the channel and arms it circularly: each peripheral
// request moves one byte from periphAddr into buf. The caller must have
// bound the channel's request source beforehand (SelectInput, or the
// family's fixed routing).
func NewRxRing(ch dma.Channel, periphAddr uint32, buf []byte) (*RxRing, error) {
	if len(buf) == 0 || len(buf) > maxCount {
		return nil, errBufLen
	}
	ch.TryClaim() // Channel should be claimed beforehand, we just guarantee it's claimed.
	cfg := dma.DefaultChannelConfig()
	cfg.Circular = true
	ch.Arm(dma.Transfer{
		PeriphAddr: periphAddr,
		MemAddr:    uint32(uintptr(unsafe.Pointer(&buf[0]))),
		Count:      uint16(len(buf)),
		Dir:        dma.PeriphToMem,
		PeriphSize: dma.Size8,
		MemSize:    dma.Size8,
	}, cfg)
	return &RxRing{ch: ch, buf: buf}, nil
}

// Buffered returns the number of unread bytes in the ring.
func (r *RxRing) Buffered() int {
	n := r.writePos() - r.rd
	if n < 0 {
		n += len(r.buf)
	}
	return n
}

// Read copies unread bytes into p. It never blocks; an empty ring reads as
// (0, nil).
func (r *RxRing) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		wr := r.writePos()
		if wr == r.rd {
			break
		}
		end := wr
		if end < r.rd {
			end = len(r.buf) // wrapped, take the tail first
		}
		n := copy(p[total:], r.buf[r.rd:end])
		total += n
		r.rd += n
		if r.rd == len(r.buf) {
			r.rd = 0
		}
	}
	return total, nil
}

// Err reports a pending transfer error on the ring's channel and clears the
// flag, so the channel can be re-armed.
func (r *RxRing) Err() error {
	if !r.ch.IsTransferError() {
		return nil
	}
	r.ch.ClearInterrupt(dma.TransferError)
	return errTransfer
}

// Close stops the channel and releases it.
func (r *RxRing) Close() {
	r.ch.Stop()
	r.ch.Unclaim()
}

// writePos is the index the hardware will write next.
func (r *RxRing) writePos() int {
	return len(r.buf) - int(r.ch.Remaining())
}
