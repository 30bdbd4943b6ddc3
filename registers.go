package rfm95x

import "fmt"

// Register is the address of a byte of chip configuration or status.
type Register byte

// RFM95x / SX1276 LoRa register addresses.
const (
	RegFifo              Register = 0x00
	RegOpMode            Register = 0x01
	RegFrfMsb            Register = 0x06
	RegFrfMid            Register = 0x07
	RegFrfLsb            Register = 0x08
	RegPaConfig          Register = 0x09
	RegLna               Register = 0x0c
	RegFifoAddrPtr       Register = 0x0d
	RegFifoTxBaseAddr    Register = 0x0e
	RegFifoRxBaseAddr    Register = 0x0f
	RegFifoRxCurrentAddr Register = 0x10
	RegRxNbBytes         Register = 0x13
	RegModemConfig1      Register = 0x1d
	RegVersion           Register = 0x42
)

var registerNames = map[Register]string{
	RegFifo:              "RegFifo",
	RegOpMode:            "RegOpMode",
	RegFrfMsb:            "RegFrfMsb",
	RegFrfMid:            "RegFrfMid",
	RegFrfLsb:            "RegFrfLsb",
	RegPaConfig:          "RegPaConfig",
	RegLna:               "RegLna",
	RegFifoAddrPtr:       "RegFifoAddrPtr",
	RegFifoTxBaseAddr:    "RegFifoTxBaseAddr",
	RegFifoRxBaseAddr:    "RegFifoRxBaseAddr",
	RegFifoRxCurrentAddr: "RegFifoRxCurrentAddr",
	RegRxNbBytes:         "RegRxNbBytes",
	RegModemConfig1:      "RegModemConfig1",
	RegVersion:           "RegVersion",
}

func (r Register) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reg(0x%02X)", byte(r))
}

// Bit fields, as [high, low] bit positions inside their register.
const (
	// RegOpMode
	_MODE_HIGH       = 2
	_MODE_LOW        = 0
	_LONG_RANGE_MODE = 7

	// RegPaConfig: OutputPower, Pout = 2 + OutputPower on PA_BOOST
	_OUTPUT_POWER_HIGH = 3
	_OUTPUT_POWER_LOW  = 0

	// RegLna
	_LNA_GAIN_HIGH = 7
	_LNA_GAIN_LOW  = 5

	// RegModemConfig1
	_BW_HIGH = 7
	_BW_LOW  = 4

	// Frequency bytes use the whole register.
	_BYTE_HIGH = 7
	_BYTE_LOW  = 0
)

// FifoSize is the size in bytes of the chip's shared TX/RX FIFO.
const FifoSize = 256

// ChipVersion is the silicon revision reported by RegVersion on SX1276 parts.
const ChipVersion = 0x12
