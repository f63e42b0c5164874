package dma

// Input identifies a peripheral request source. The values are the DMAMUX
// request line IDs (G4 RM, Table 91). Families without a multiplexer ignore
// the numeric value and use the fixed assignment tables below instead.
//
// Only the sources the common peripheral drivers need are listed; the mux
// decodes IDs up to 115.
type Input uint8

const (
	ADC1      Input = 5
	DAC1Ch1   Input = 6
	DAC1Ch2   Input = 7
	TIM6Up    Input = 8
	TIM7Up    Input = 9
	SPI1Rx    Input = 10
	SPI1Tx    Input = 11
	SPI2Rx    Input = 12
	SPI2Tx    Input = 13
	SPI3Rx    Input = 14
	SPI3Tx    Input = 15
	I2C1Rx    Input = 16
	I2C1Tx    Input = 17
	I2C2Rx    Input = 18
	I2C2Tx    Input = 19
	I2C3Rx    Input = 20
	I2C3Tx    Input = 21
	I2C4Rx    Input = 22
	I2C4Tx    Input = 23
	USART1Rx  Input = 24
	USART1Tx  Input = 25
	USART2Rx  Input = 26
	USART2Tx  Input = 27
	USART3Rx  Input = 28
	USART3Tx  Input = 29
	UART4Rx   Input = 30
	UART4Tx   Input = 31
	UART5Rx   Input = 32
	UART5Tx   Input = 33
	LPUART1Rx Input = 34
	LPUART1Tx Input = 35
	ADC2      Input = 36
	ADC3      Input = 37
	ADC4      Input = 38
	ADC5      Input = 39
)

const badInput = "dma: input not routed on this family"

// DMA1Channel returns the channel hard-wired to the request source on
// families without a request multiplexer (L4 RM, Table 41). Sources the
// table does not route panic; they are unreachable from the peripheral
// drivers of those families.
func (in Input) DMA1Channel() uint8 {
	switch in {
	case ADC1:
		return 1
	case SPI1Rx:
		return 2
	case SPI1Tx:
		return 3
	case SPI2Rx:
		return 4
	case SPI2Tx:
		return 5
	case I2C1Rx:
		return 7
	case I2C1Tx:
		return 6
	case I2C2Rx:
		return 5
	case I2C2Tx:
		return 4
	case I2C3Rx:
		return 3
	case USART1Rx:
		return 5
	case USART1Tx:
		return 4
	case USART2Rx:
		return 6
	case USART2Tx:
		return 7
	case USART3Rx:
		return 3
	case USART3Tx:
		return 2
	case ADC2:
		return 2
	}
	panic(badInput)
}

// cselCode returns the CSELR request code for the source on families that
// select requests per channel (L4 RM, Table 41).
func (in Input) cselCode() uint8 {
	switch in {
	case ADC1, ADC2:
		return 0b0000
	case SPI1Rx, SPI1Tx, SPI2Rx, SPI2Tx:
		return 0b0001
	case USART1Rx, USART1Tx, USART2Rx, USART2Tx, USART3Rx, USART3Tx:
		return 0b0010
	case I2C1Rx, I2C1Tx, I2C2Rx, I2C2Tx, I2C3Rx:
		return 0b0011
	}
	panic(badInput)
}
