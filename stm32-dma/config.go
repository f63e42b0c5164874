package dma

// Priority is the software priority of a channel, written to the CCR PL
// field. Requests of equal software priority are arbitrated in hardware by
// channel number, lowest wins. Can only be set while the channel is disabled.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityVeryHigh
)

// Direction of a transfer, written to the CCR DIR bit.
// Can only be set while the channel is disabled.
type Direction uint8

const (
	// PeriphToMem reads from the peripheral address and writes to memory.
	PeriphToMem Direction = 0
	// MemToPeriph reads from memory and writes to the peripheral address.
	MemToPeriph Direction = 1
)

// DataSize is the width of a single transferred element, written to the CCR
// PSIZE and MSIZE fields. The peripheral and memory sides of a transfer may
// use different widths. Can only be set while the channel is disabled.
type DataSize uint8

const (
	Size8 DataSize = iota
	Size16
	Size32
)

// Interrupt selects one of the three per-channel event interrupts, enabled
// via the CCR TEIE, HTIE and TCIE bits and acknowledged via the IFCR.
type Interrupt uint8

const (
	TransferError Interrupt = iota
	HalfTransfer
	TransferComplete
)

// ccrBit returns the CCR interrupt-enable bit for the event.
func (i Interrupt) ccrBit() uint32 {
	switch i {
	case TransferError:
		return ccrTEIE
	case HalfTransfer:
		return ccrHTIE
	case TransferComplete:
		return ccrTCIE
	}
	panic(badInterrupt)
}

// flagBit returns the ISR/IFCR bit for the event on 1-based channel n. The
// status and clear registers share one bit layout: four flags per channel.
func (i Interrupt) flagBit(n uint8) uint32 {
	shift := uint32(n-1) * 4
	switch i {
	case TransferError:
		return isrTEIF << shift
	case HalfTransfer:
		return isrHTIF << shift
	case TransferComplete:
		return isrTCIF << shift
	}
	panic(badInterrupt)
}

// Transfer describes a single transfer: the two bus addresses, the element
// count and the element geometry. Addresses are raw machine words; alignment
// and bus accessibility are the caller's responsibility, as is keeping the
// memory buffer valid for the lifetime of the transfer.
type Transfer struct {
	// PeriphAddr is written to CPAR. Data is moved from/to this address on
	// each peripheral request.
	PeriphAddr uint32
	// MemAddr is written to CMAR.
	MemAddr uint32
	// Count is the number of elements to move, not bytes. Hardware
	// decrements it after each element and, in circular mode, reloads it
	// with this initial value on exhaustion.
	Count uint16
	// Direction of the move.
	Dir Direction
	// PeriphSize and MemSize are the element widths on each side.
	PeriphSize DataSize
	MemSize    DataSize
}

// ChannelConfig holds the non-transfer-specific channel parameters.
// All of them land in CCR fields that are read-only while EN is set.
type ChannelConfig struct {
	Priority Priority
	// Circular reloads the element count on exhaustion and keeps serving
	// requests indefinitely over the same buffer. Mutually exclusive with
	// memory-to-memory mode, which this package does not expose.
	Circular bool
	// PeriphIncr and MemIncr advance the respective address after each
	// element.
	PeriphIncr bool
	MemIncr    bool
}

// DefaultChannelConfig returns the configuration used by most peripheral
// transfers: medium priority, one-shot, fixed peripheral register address,
// incrementing memory address.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		Priority: PriorityMedium,
		MemIncr:  true,
	}
}

// CCR bit assignments, identical on all supported families.
const (
	ccrEN       = 1 << 0
	ccrTCIE     = 1 << 1
	ccrHTIE     = 1 << 2
	ccrTEIE     = 1 << 3
	ccrDIR      = 1 << 4
	ccrCIRC     = 1 << 5
	ccrPINC     = 1 << 6
	ccrMINC     = 1 << 7
	ccrPSIZEPos = 8
	ccrMSIZEPos = 10
	ccrPLPos    = 12
	ccrMEM2MEM  = 1 << 14

	// The fields rewritten wholesale by Arm. MEM2MEM, PL, MSIZE, PSIZE,
	// MINC, PINC, CIRC and DIR are read-only while EN=1.
	ccrCfgMask = ccrDIR | ccrCIRC | ccrPINC | ccrMINC |
		0b11<<ccrPSIZEPos | 0b11<<ccrMSIZEPos | 0b11<<ccrPLPos
)

// ISR/IFCR per-channel flag bits, before shifting by 4*(channel-1).
const (
	isrGIF  = 1 << 0
	isrTCIF = 1 << 1
	isrHTIF = 1 << 2
	isrTEIF = 1 << 3
)
