//go:build stm32l4

// Echoes everything received on USART2, with reception running entirely in
// hardware: the DMA channel writes incoming bytes into a circular buffer and
// the program drains it at its leisure.
package main

import (
	"machine"
	"runtime/volatile"
	"time"
	"unsafe"

	dma "github.com/tinygo-org/dma/stm32-dma"
	"github.com/tinygo-org/dma/stm32-dma/dmalib"
)

// USART2 registers (RM0394).
const (
	usart2CR3 = 0x4000_4408
	usart2RDR = 0x4000_4424
)

var rxbuf [256]byte

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
	// Raise a DMA request per received byte (CR3 DMAR).
	cr3 := (*volatile.Register32)(unsafe.Pointer(uintptr(usart2CR3)))
	cr3.SetBits(1 << 6)

	dma.DMA1.EnableClock()
	ch := dma.DMA1.Channel(dma.USART2Rx.DMA1Channel())
	ch.TryClaim()
	ch.SelectInput(dma.USART2Rx)

	ring, err := dmalib.NewRxRing(ch, usart2RDR, rxbuf[:])
	if err != nil {
		panic(err.Error())
	}

	var p [64]byte
	for {
		if err := ring.Err(); err != nil {
			println("uartecho:", err.Error())
		}
		n, _ := ring.Read(p[:])
		if n > 0 {
			machine.Serial.Write(p[:n])
		}
		time.Sleep(time.Millisecond)
	}
}
