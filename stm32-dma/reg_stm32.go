//go:build stm32f3 || stm32g0 || stm32g4 || stm32l4

package dma

import (
	"device/arm"
	"runtime/volatile"
)

// reg32 is a 32-bit MMIO register.
type reg32 = volatile.Register32

// memFence orders memory accesses around the volatile control writes that
// hand a buffer to the DMA engine or take it back. Arm uses it to keep
// buffer-population stores ahead of the arming write, Stop to keep
// subsequent buffer reads behind the acknowledged disable.
func memFence() {
	arm.Asm("dmb")
}
