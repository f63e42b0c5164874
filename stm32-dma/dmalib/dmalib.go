// Package dmalib builds small peripheral-facing helpers on top of the dma
// package: slice-to-bus-address glue and completion waiting, so peripheral
// drivers don't repeat them. The dma package itself only moves opaque
// machine words.
package dmalib

import (
	"errors"
	"math"
	"runtime"
)

const (
	timeoutRetries = math.MaxUint16 * 8

	// maxCount is the largest element count of a single transfer; the
	// hardware counter is 16 bit.
	maxCount = math.MaxUint16
)

var (
	errTimeout  = errors.New("dmalib:timeout")
	errTransfer = errors.New("dmalib:transfer error")
	errBufLen   = errors.New("dmalib:buffer empty or longer than 65535 elements")
)

func gosched() {
	runtime.Gosched()
}
