//go:build stm32l4

// Streams a full RGB565 framebuffer to an ST7789 panel over SPI1, letting a
// DMA channel push the pixel data while the CPU renders the next frame.
// Commands and their arguments still go through the machine SPI driver; only
// the bulk pixel writes bypass it.
package main

import (
	"machine"
	"runtime/volatile"
	"time"
	"unsafe"

	"tinygo.org/x/drivers"

	dma "github.com/tinygo-org/dma/stm32-dma"
	"github.com/tinygo-org/dma/stm32-dma/dmalib"
)

const (
	width  = 240
	height = 240
)

// SPI1 registers (RM0394).
const (
	spi1CR2 = 0x4001_3004
	spi1DR  = 0x4001_300c
)

// ST7789 commands.
const (
	cmdSLPOUT = 0x11
	cmdCOLMOD = 0x3a
	cmdMADCTL = 0x36
	cmdCASET  = 0x2a
	cmdRASET  = 0x2b
	cmdRAMWR  = 0x2c
	cmdDISPON = 0x29
)

type display struct {
	bus      machine.SPI
	dc       machine.Pin
	pixels   *dmalib.Writer
	rotation drivers.Rotation
}

var frame [width * height * 2]byte

func main() {
	machine.SPI0.Configure(machine.SPIConfig{Frequency: 32e6})

	dc := machine.PA8
	dc.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Let SPI1 raise a DMA request whenever the transmit register is
	// empty (CR2 TXDMAEN).
	cr2 := (*volatile.Register32)(unsafe.Pointer(uintptr(spi1CR2)))
	cr2.SetBits(1 << 1)

	dma.DMA1.EnableClock()
	ch := dma.DMA1.Channel(dma.SPI1Tx.DMA1Channel())
	ch.TryClaim()
	ch.SelectInput(dma.SPI1Tx)

	d := &display{
		bus:      machine.SPI0,
		dc:       dc,
		pixels:   dmalib.NewWriter(ch, spi1DR),
		rotation: drivers.Rotation0,
	}
	d.init()

	for frameNum := 0; ; frameNum++ {
		render(frame[:], frameNum)
		if err := d.flush(); err != nil {
			println("st7789:", err.Error())
		}
	}
}

func (d *display) init() {
	d.command(cmdSLPOUT)
	time.Sleep(120 * time.Millisecond)
	d.command(cmdCOLMOD, 0x55) // 16 bpp
	d.command(cmdMADCTL, madctl(d.rotation))
	d.command(cmdCASET, 0, 0, (width-1)>>8, (width-1)&0xff)
	d.command(cmdRASET, 0, 0, (height-1)>>8, (height-1)&0xff)
	d.command(cmdDISPON)
}

func (d *display) command(cmd byte, args ...byte) {
	d.dc.Low()
	d.bus.Tx([]byte{cmd}, nil)
	if len(args) > 0 {
		d.dc.High()
		d.bus.Tx(args, nil)
	}
}

// flush sends the whole framebuffer as one memory-write burst.
func (d *display) flush() error {
	d.command(cmdRAMWR)
	d.dc.High()
	// The count register is 16 bit, a 240x240 16bpp frame needs two arms.
	half := len(frame) / 2
	if err := d.pixels.Write8(frame[:half]); err != nil {
		return err
	}
	return d.pixels.Write8(frame[half:])
}

func madctl(r drivers.Rotation) byte {
	switch r {
	case drivers.Rotation90:
		return 0x60
	case drivers.Rotation180:
		return 0xc0
	case drivers.Rotation270:
		return 0xa0
	}
	return 0x00
}

// render draws a moving gradient, enough to see the refresh happening.
func render(buf []byte, frameNum int) {
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8(x+frameNum) >> 3
			b := uint8(y+frameNum) >> 3
			px := uint16(r)<<11 | uint16(b)
			buf[i] = byte(px >> 8)
			buf[i+1] = byte(px)
			i += 2
		}
	}
}
