package rfm95x

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/physic"
)

// Valid parameter ranges. Every range is half-open: [min, max).
const (
	minPower = 2
	maxPower = 17

	minGain = 1
	maxGain = 6

	minFrequency = 868.0
	maxFrequency = 915.0
)

// ValidPower reports whether dBm is an accepted output power, 2 to 16 dBm.
func ValidPower(dBm int) bool { return dBm >= minPower && dBm < maxPower }

// ValidGain reports whether gain is an accepted LNA gain code, G1 (max) to G5.
func ValidGain(gain int) bool { return gain >= minGain && gain < maxGain }

// ValidFrequency reports whether mhz lies in the 868.0 to 915.0 MHz band (915 excluded).
func ValidFrequency(mhz float64) bool {
	return !math.IsNaN(mhz) && mhz >= minFrequency && mhz < maxFrequency
}

// Configuration holds the radio parameters applied to a Device.
// A Configuration is only produced by a Builder or DefaultConfiguration and cannot
// be modified afterwards.
type Configuration struct {
	power     int
	gain      int
	frequency float64
	bandwidth Bandwidth
}

// DefaultConfiguration returns 10 dBm, LNA gain G4, 910.0 MHz and 20.8 kHz.
func DefaultConfiguration() Configuration {
	return Configuration{
		power:     10,
		gain:      4,
		frequency: 910.0,
		bandwidth: Bw020_8,
	}
}

// Power returns the output power in dBm.
func (c Configuration) Power() int { return c.power }

// Gain returns the LNA gain code.
func (c Configuration) Gain() int { return c.gain }

// Frequency returns the carrier frequency in MHz.
func (c Configuration) Frequency() float64 { return c.frequency }

// Bandwidth returns the channel bandwidth.
func (c Configuration) Bandwidth() Bandwidth { return c.bandwidth }

// Carrier returns the carrier frequency as a physic.Frequency.
func (c Configuration) Carrier() physic.Frequency {
	return physic.Frequency(math.Round(c.frequency * float64(physic.MegaHertz)))
}

// Verify reports whether every field is within range.
func (c Configuration) Verify() bool {
	return c.Validate() == nil
}

// Validate returns an error wrapping ErrInvalidParameter for the first field
// that is out of range.
func (c Configuration) Validate() error {
	if !ValidPower(c.power) {
		return invalidParameter("power %d dBm outside [%d, %d)", c.power, minPower, maxPower)
	}
	if !ValidGain(c.gain) {
		return invalidParameter("gain %d outside [%d, %d)", c.gain, minGain, maxGain)
	}
	if !ValidFrequency(c.frequency) {
		return invalidParameter("frequency %g MHz outside [%g, %g)", c.frequency, minFrequency, maxFrequency)
	}
	if !c.bandwidth.Valid() {
		return invalidParameter("bandwidth code %d", c.bandwidth)
	}
	return nil
}

func (c Configuration) String() string {
	return fmt.Sprintf("Configuration(Power=%ddBm, Gain=G%d, Frequency=%.3fMHz, Bandwidth=%s)",
		c.power, c.gain, c.frequency, c.bandwidth)
}

// Builder assembles a Configuration field by field. It is a plain value: every
// setter returns a modified copy and leaves the receiver untouched.
//
//	cfg, err := rfm95x.NewBuilder().
//		Power(2).
//		Gain(4).
//		Frequency(910).
//		Bandwidth(rfm95x.Bw062_5).
//		Build()
type Builder struct {
	cfg Configuration
	set uint8
}

const (
	setPower uint8 = 1 << iota
	setGain
	setFrequency
	setBandwidth
	setAll = setPower | setGain | setFrequency | setBandwidth
)

// NewBuilder returns an empty Builder.
func NewBuilder() Builder { return Builder{} }

// Power sets the output power in dBm.
func (b Builder) Power(dBm int) Builder {
	b.cfg.power = dBm
	b.set |= setPower
	return b
}

// Gain sets the LNA gain code.
func (b Builder) Gain(gain int) Builder {
	b.cfg.gain = gain
	b.set |= setGain
	return b
}

// Frequency sets the carrier frequency in MHz.
func (b Builder) Frequency(mhz float64) Builder {
	b.cfg.frequency = mhz
	b.set |= setFrequency
	return b
}

// Bandwidth sets the channel bandwidth.
func (b Builder) Bandwidth(bw Bandwidth) Builder {
	b.cfg.bandwidth = bw
	b.set |= setBandwidth
	return b
}

// Build returns the Configuration if every field was set and passes its range
// check. Otherwise it returns the zero Configuration and an error wrapping
// ErrInvalidParameter.
func (b Builder) Build() (Configuration, error) {
	if b.set != setAll {
		return Configuration{}, invalidParameter("missing fields: %s", b.missing())
	}
	if err := b.cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return b.cfg, nil
}

func (b Builder) missing() string {
	var s string
	for _, f := range []struct {
		bit  uint8
		name string
	}{{setPower, "power"}, {setGain, "gain"}, {setFrequency, "frequency"}, {setBandwidth, "bandwidth"}} {
		if b.set&f.bit != 0 {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += f.name
	}
	return s
}
