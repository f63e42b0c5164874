//go:build !stm32f3 && !stm32g0 && !stm32g4 && !stm32l4

package dmalib

import (
	"testing"

	dma "github.com/tinygo-org/dma/stm32-dma"
)

func TestWriterComplete(t *testing.T) {
	ch := dma.DMA1.Channel(5)
	defer ch.Unclaim()
	w := NewWriter(ch, 0x4001_300c)

	// The model never makes progress on its own, so pretend the transfer
	// finished before the wait starts.
	ch.RaiseFlag(dma.TransferComplete)
	if err := w.Write8([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if ch.Remaining() != 5 {
		t.Errorf("count register %d, want 5 elements", ch.Remaining())
	}
	if ch.IsTransferComplete() {
		t.Error("complete flag not acknowledged")
	}
}

func TestWriterTransferError(t *testing.T) {
	ch := dma.DMA1.Channel(6)
	defer ch.Unclaim()
	w := NewWriter(ch, 0x4001_300c)

	ch.RaiseFlag(dma.TransferError)
	if err := w.Write16([]uint16{1, 2, 3}); err != errTransfer {
		t.Fatalf("got %v, want %v", err, errTransfer)
	}
	if ch.IsTransferError() {
		t.Error("error flag must be cleared so the channel can be re-armed")
	}
}

func TestWriterBadBuffer(t *testing.T) {
	ch := dma.DMA1.Channel(7)
	defer ch.Unclaim()
	w := NewWriter(ch, 0x4001_300c)
	if err := w.Write8(nil); err != errBufLen {
		t.Fatalf("got %v, want %v", err, errBufLen)
	}
	if err := w.Write8(make([]byte, maxCount+1)); err != errBufLen {
		t.Fatalf("got %v, want %v", err, errBufLen)
	}
}
