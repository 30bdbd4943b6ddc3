package rfm95x

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestOperatingModeCode(t *testing.T) {
	want := map[OperatingMode]byte{
		ModeSleep:        0b000,
		ModeStandBy:      0b010,
		ModeFSTX:         0b010,
		ModeTX:           0b011,
		ModeFSRX:         0b100,
		ModeRXContinuous: 0b101,
		ModeRXSingle:     0b110,
		ModeCAD:          0b111,
	}
	for _, m := range OperatingModes {
		if got := m.Code(); got != want[m] {
			t.Errorf("%s.Code() = 0b%03b, want 0b%03b", m, got, want[m])
		}
	}
}

func TestOperatingModeCapabilities(t *testing.T) {
	tests := []struct {
		mode                                   OperatingMode
		tune, modulation, receive, transmit bool
	}{
		{ModeSleep, true, true, false, false},
		{ModeStandBy, true, false, false, false},
		{ModeFSTX, false, false, false, true},
		{ModeTX, false, false, false, true},
		{ModeFSRX, false, false, true, false},
		{ModeRXContinuous, false, false, true, false},
		{ModeRXSingle, false, false, true, false},
		{ModeCAD, false, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.mode.CanTune(); got != tt.tune {
			t.Errorf("%s.CanTune() = %v", tt.mode, got)
		}
		if got := tt.mode.CanSelectModulation(); got != tt.modulation {
			t.Errorf("%s.CanSelectModulation() = %v", tt.mode, got)
		}
		if got := tt.mode.CanReceive(); got != tt.receive {
			t.Errorf("%s.CanReceive() = %v", tt.mode, got)
		}
		if got := tt.mode.CanTransmit(); got != tt.transmit {
			t.Errorf("%s.CanTransmit() = %v", tt.mode, got)
		}
	}
}

func TestBandwidthCode(t *testing.T) {
	for i, bw := range Bandwidths {
		if got := bw.Code(); got != byte(i) {
			t.Errorf("%s.Code() = %d, want %d", bw, got, i)
		}
		if !bw.Valid() {
			t.Errorf("%s reported invalid", bw)
		}
	}
	if Bandwidth(len(Bandwidths)).Valid() {
		t.Errorf("Bandwidth(%d) reported valid", len(Bandwidths))
	}
}

func TestBandwidthFrequency(t *testing.T) {
	tests := []struct {
		bw   Bandwidth
		want physic.Frequency
	}{
		{Bw007_8, 7800 * physic.Hertz},
		{Bw031_25, 31250 * physic.Hertz},
		{Bw125_0, 125 * physic.KiloHertz},
		{Bw500_0, 500 * physic.KiloHertz},
		{Bandwidth(42), 0},
	}
	for _, tt := range tests {
		if got := tt.bw.Frequency(); got != tt.want {
			t.Errorf("Bandwidth(%d).Frequency() = %s, want %s", tt.bw, got, tt.want)
		}
	}
}

func TestFrequencyBytes(t *testing.T) {
	tests := []struct {
		mhz  float64
		word uint32
		want [3]byte
	}{
		{910.0, 14909440, [3]byte{0xe3, 0x80, 0x00}},
		{868.0, 14221312, [3]byte{0xd9, 0x00, 0x00}},
		{900.0, 14745600, [3]byte{0xe1, 0x00, 0x00}},
		{914.9, 14989722, [3]byte{0xe4, 0xb9, 0x9a}},
	}
	for _, tt := range tests {
		if got := FrequencyWord(tt.mhz); got != tt.word {
			t.Errorf("FrequencyWord(%g) = %d, want %d", tt.mhz, got, tt.word)
		}
		if got := FrequencyBytes(tt.mhz); got != tt.want {
			t.Errorf("FrequencyBytes(%g) = % X, want % X", tt.mhz, got, tt.want)
		}
	}
}

func TestEncodePower(t *testing.T) {
	for dBm := minPower; dBm < maxPower; dBm++ {
		if got := encodePower(dBm); got != byte(dBm-2) {
			t.Errorf("encodePower(%d) = %d, want %d", dBm, got, dBm-2)
		}
		if got := encodePower(dBm); got > 0x0f {
			t.Errorf("encodePower(%d) = %d overflows OutputPower", dBm, got)
		}
	}
}
