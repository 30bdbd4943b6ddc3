package rfm95x

import (
	"math"

	"periph.io/x/conn/v3/physic"
)

// OperatingMode is one of the 8 mutually exclusive transceiver modes.
type OperatingMode uint8

const (
	// ModeSleep is the low-power mode. FIFO access and register tuning are allowed.
	ModeSleep OperatingMode = iota
	// ModeStandBy keeps the crystal oscillator running.
	ModeStandBy
	// ModeFSTX is frequency synthesis for transmit.
	ModeFSTX
	// ModeTX transmits the FIFO content.
	ModeTX
	// ModeFSRX is frequency synthesis for receive.
	ModeFSRX
	// ModeRXContinuous receives packets until told otherwise.
	ModeRXContinuous
	// ModeRXSingle receives a single packet.
	ModeRXSingle
	// ModeCAD runs channel activity detection.
	ModeCAD
)

// OperatingModes lists every mode in declaration order.
var OperatingModes = [...]OperatingMode{
	ModeSleep, ModeStandBy, ModeFSTX, ModeTX, ModeFSRX, ModeRXContinuous, ModeRXSingle, ModeCAD,
}

// Code returns the 3-bit value written to the Mode field of RegOpMode.
// StandBy and FSTX share 0b010, as documented by the module vendor.
func (m OperatingMode) Code() byte {
	switch m {
	case ModeSleep:
		return 0b000
	case ModeStandBy:
		return 0b010
	case ModeFSTX:
		return 0b010
	case ModeTX:
		return 0b011
	case ModeFSRX:
		return 0b100
	case ModeRXContinuous:
		return 0b101
	case ModeRXSingle:
		return 0b110
	case ModeCAD:
		return 0b111
	default:
		return 0b000
	}
}

func (m OperatingMode) String() string {
	switch m {
	case ModeSleep:
		return "Sleep"
	case ModeStandBy:
		return "StandBy"
	case ModeFSTX:
		return "FSTX"
	case ModeTX:
		return "TX"
	case ModeFSRX:
		return "FSRX"
	case ModeRXContinuous:
		return "RXContinuous"
	case ModeRXSingle:
		return "RXSingle"
	case ModeCAD:
		return "CAD"
	default:
		return "unknown"
	}
}

// CanTune reports whether the carrier frequency may be changed (synthesizer stopped).
func (m OperatingMode) CanTune() bool { return m == ModeSleep || m == ModeStandBy }

// CanSelectModulation reports whether the LongRangeMode bit may be changed.
func (m OperatingMode) CanSelectModulation() bool { return m == ModeSleep }

// CanReceive reports whether the receive FIFO may be drained.
func (m OperatingMode) CanReceive() bool {
	return m == ModeFSRX || m == ModeRXContinuous || m == ModeRXSingle
}

// CanTransmit reports whether the transmit FIFO may be loaded.
func (m OperatingMode) CanTransmit() bool { return m == ModeFSTX || m == ModeTX }

// Bandwidth is a LoRa channel bandwidth.
type Bandwidth uint8

const (
	Bw007_8  Bandwidth = iota // 7.8 kHz
	Bw010_4                   // 10.4 kHz
	Bw015_6                   // 15.6 kHz
	Bw020_8                   // 20.8 kHz
	Bw031_25                  // 31.25 kHz
	Bw041_7                   // 41.7 kHz
	Bw062_5                   // 62.5 kHz
	Bw125_0                   // 125 kHz
	Bw250_0                   // 250 kHz
	Bw500_0                   // 500 kHz
)

// Bandwidths lists every bandwidth in ascending order.
var Bandwidths = [...]Bandwidth{
	Bw007_8, Bw010_4, Bw015_6, Bw020_8, Bw031_25, Bw041_7, Bw062_5, Bw125_0, Bw250_0, Bw500_0,
}

var bandwidthHertz = [...]int64{7800, 10400, 15600, 20800, 31250, 41700, 62500, 125000, 250000, 500000}

// Code returns the 4-bit value written to the Bw field of RegModemConfig1.
func (b Bandwidth) Code() byte {
	return byte(b) & 0x0f
}

// Valid reports whether b is one of the ten defined bandwidths.
func (b Bandwidth) Valid() bool {
	return int(b) < len(bandwidthHertz)
}

// Frequency returns the channel width.
func (b Bandwidth) Frequency() physic.Frequency {
	if !b.Valid() {
		return 0
	}
	return physic.Frequency(bandwidthHertz[b]) * physic.Hertz
}

func (b Bandwidth) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return b.Frequency().String()
}

// Modulation selects the modem family through the LongRangeMode bit of RegOpMode.
type Modulation uint8

const (
	// ModulationFSK selects the FSK/OOK modem.
	ModulationFSK Modulation = 0
	// ModulationLoRa selects the LoRa spread-spectrum modem.
	ModulationLoRa Modulation = 1
)

func (m Modulation) String() string {
	switch m {
	case ModulationFSK:
		return "FSK/OOK"
	case ModulationLoRa:
		return "LoRa"
	default:
		return "unknown"
	}
}

// OscillatorMHz is the frequency of the module's reference crystal.
const OscillatorMHz = 32

// FrequencyWord returns the 24-bit Frf synthesizer word for a carrier in MHz:
// round(mhz * 2^19 / 32). The multiplication happens first so the result matches
// the chip's 61.035 Hz step exactly.
func FrequencyWord(mhz float64) uint32 {
	return uint32(math.Round(mhz*(1<<19)/OscillatorMHz)) & 0xffffff
}

// FrequencyBytes splits the synthesizer word for mhz into the values of
// RegFrfMsb, RegFrfMid and RegFrfLsb.
func FrequencyBytes(mhz float64) [3]byte {
	frf := FrequencyWord(mhz)
	return [3]byte{byte(frf >> 16), byte(frf >> 8), byte(frf)}
}

// encodePower maps dBm on PA_BOOST to the OutputPower field.
func encodePower(dBm int) byte {
	return byte(dBm - minPower)
}
