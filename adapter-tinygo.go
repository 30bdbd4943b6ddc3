//go:build tinygo

package rfm95x

import (
	"machine"
)

// tinygoPin wraps a machine.Pin to satisfy the Pin interface.
type tinygoPin struct {
	pin machine.Pin
}

func (p *tinygoPin) Out(l Level) error {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.pin.Set(bool(l))
	return nil
}

// NewTinyGoPin adapts a machine pin. machine.NoPin yields nil.
func NewTinyGoPin(p machine.Pin) Pin {
	if p == machine.NoPin {
		return nil
	}
	return &tinygoPin{pin: p}
}

// tinygoSPI wraps a machine.SPI to satisfy the Bus interface.
type tinygoSPI struct {
	spi *machine.SPI
	cs  machine.Pin
}

func (s *tinygoSPI) tx(w, r []byte) error {
	s.cs.Low()
	err := s.spi.Tx(w, r)
	s.cs.High()
	return err
}

func (s *tinygoSPI) ReadRegister(reg Register) (byte, error) {
	var buf [4]byte
	buf[0] = byte(reg) & 0x7f
	err := s.tx(buf[:2], buf[2:])
	return buf[3], err
}

func (s *tinygoSPI) ReadRegisters(reg Register, buf []byte) error {
	w := make([]byte, len(buf)+1)
	w[0] = byte(reg) & 0x7f
	r := make([]byte, len(w))
	if err := s.tx(w, r); err != nil {
		return err
	}
	copy(buf, r[1:])
	return nil
}

func (s *tinygoSPI) WriteRegister(reg Register, data ...byte) error {
	return s.tx(append([]byte{byte(reg) | 0x80}, data...), nil)
}

// tinygoI2C wraps a machine.I2C to satisfy the Bus interface.
type tinygoI2C struct {
	i2c  *machine.I2C
	addr uint16
}

func (b *tinygoI2C) ReadRegister(reg Register) (byte, error) {
	var buf [1]byte
	err := b.i2c.Tx(b.addr, []byte{byte(reg)}, buf[:])
	return buf[0], err
}

func (b *tinygoI2C) ReadRegisters(reg Register, buf []byte) error {
	return b.i2c.Tx(b.addr, []byte{byte(reg)}, buf)
}

func (b *tinygoI2C) WriteRegister(reg Register, data ...byte) error {
	return b.i2c.Tx(b.addr, append([]byte{byte(reg)}, data...), nil)
}

// Board holds the TinyGo wiring of the module. Set either SPI (with CSPin) or
// I2C (with I2CAddr).
type Board struct {
	Configuration
	SPI     *machine.SPI
	CSPin   machine.Pin
	I2C     *machine.I2C
	I2CAddr uint16
	// ResetPin is wired to RESET.
	ResetPin machine.Pin
	// DIOPins are wired to DIO0..DIO5. machine.NoPin leaves a line unused.
	DIOPins [6]machine.Pin
}

// NewTinyGo creates a new RFM95x driver for TinyGo systems. The bus must already
// be configured (machine.SPI0.Configure / machine.I2C1.Configure).
func NewTinyGo(b Board) (*Device[Sleep], error) {
	var bus Bus
	switch {
	case b.SPI != nil:
		// Configure CS pin as output and set high (inactive)
		b.CSPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		b.CSPin.High()
		bus = &tinygoSPI{spi: b.SPI, cs: b.CSPin}
	case b.I2C != nil:
		bus = &tinygoI2C{i2c: b.I2C, addr: b.I2CAddr}
	}

	pins := Pins{
		Reset: NewTinyGoPin(b.ResetPin),
		DIO0:  NewTinyGoPin(b.DIOPins[0]),
		DIO1:  NewTinyGoPin(b.DIOPins[1]),
		DIO2:  NewTinyGoPin(b.DIOPins[2]),
		DIO3:  NewTinyGoPin(b.DIOPins[3]),
		DIO4:  NewTinyGoPin(b.DIOPins[4]),
		DIO5:  NewTinyGoPin(b.DIOPins[5]),
	}
	return New(bus, pins, b.Configuration)
}
