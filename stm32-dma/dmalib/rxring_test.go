//go:build !stm32f3 && !stm32g0 && !stm32g4 && !stm32l4

package dmalib

import (
	"bytes"
	"testing"

	dma "github.com/tinygo-org/dma/stm32-dma"
)

// feed plays the hardware's role: it stores p at the ring buffer's write
// position and advances the modeled remaining-count accordingly.
func feed(ch dma.Channel, buf, p []byte) {
	wr := len(buf) - int(ch.Remaining())
	for _, b := range p {
		buf[wr] = b
		wr++
		if wr == len(buf) {
			wr = 0
		}
	}
	rem := len(buf) - wr
	ch.SetRemaining(uint16(rem))
}

func TestRxRing(t *testing.T) {
	ch := dma.DMA1.Channel(1)
	defer ch.Unclaim()
	buf := make([]byte, 8)

	ring, err := NewRxRing(ch, 0x4000_4424, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !ch.IsClaimed() {
		t.Error("ring did not claim its channel")
	}
	if ring.Buffered() != 0 {
		t.Error("fresh ring not empty")
	}

	feed(ch, buf, []byte("abc"))
	if n := ring.Buffered(); n != 3 {
		t.Fatalf("buffered %d, want 3", n)
	}
	var p [16]byte
	n, err := ring.Read(p[:])
	if err != nil || n != 3 || !bytes.Equal(p[:n], []byte("abc")) {
		t.Fatalf("read %q (%d, %v), want abc", p[:n], n, err)
	}

	// Wrap around the end of the buffer.
	feed(ch, buf, []byte("defghi"))
	n, err = ring.Read(p[:])
	if err != nil || !bytes.Equal(p[:n], []byte("defghi")) {
		t.Fatalf("read %q (%d, %v), want defghi", p[:n], n, err)
	}

	if n, _ := ring.Read(p[:]); n != 0 {
		t.Fatalf("drained ring read %d bytes", n)
	}
}

func TestRxRingShortReads(t *testing.T) {
	ch := dma.DMA1.Channel(2)
	defer ch.Unclaim()
	buf := make([]byte, 4)

	ring, err := NewRxRing(ch, 0x4000_4424, buf)
	if err != nil {
		t.Fatal(err)
	}
	feed(ch, buf, []byte("wxyz"[:3]))

	var p [2]byte
	if n, _ := ring.Read(p[:]); n != 2 || string(p[:]) != "wx" {
		t.Fatalf("read %q (%d)", p[:n], n)
	}
	if n, _ := ring.Read(p[:]); n != 1 || p[0] != 'y' {
		t.Fatalf("read %q (%d)", p[:n], n)
	}
}

func TestRxRingErr(t *testing.T) {
	ch := dma.DMA1.Channel(3)
	defer ch.Unclaim()

	ring, err := NewRxRing(ch, 0x4000_4424, make([]byte, 4))
	if err != nil {
		t.Fatal(err)
	}
	if ring.Err() != nil {
		t.Error("error reported without the flag set")
	}
	ch.RaiseFlag(dma.TransferError)
	if ring.Err() == nil {
		t.Error("transfer error not reported")
	}
	if ring.Err() != nil {
		t.Error("error flag not cleared after reporting")
	}
}

func TestRxRingBadBuffer(t *testing.T) {
	ch := dma.DMA1.Channel(4)
	defer ch.Unclaim()
	if _, err := NewRxRing(ch, 0, nil); err == nil {
		t.Error("nil buffer accepted")
	}
	if _, err := NewRxRing(ch, 0, make([]byte, maxCount+1)); err == nil {
		t.Error("oversized buffer accepted")
	}
}
