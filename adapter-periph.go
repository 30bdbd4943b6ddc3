//go:build !tinygo

package rfm95x

import (
	"encoding/binary"
	"fmt"
	"io"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/mmr"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// SPI framing: the first byte is the register address, MSB set for writes.
const (
	_SPI_WRITE = 0x80
	_SPI_READ  = 0x7f
)

// realPin wraps a gpio.PinOut to satisfy the Pin interface.
type realPin struct {
	gpio.PinOut
}

// NewPeriphPin adapts a periph.io output pin.
func NewPeriphPin(p gpio.PinOut) Pin {
	return &realPin{PinOut: p}
}

func (p *realPin) Out(l Level) error {
	if l == High {
		return p.PinOut.Out(gpio.High)
	}
	return p.PinOut.Out(gpio.Low)
}

// spiBus talks to the chip over a periph.io SPI connection.
type spiBus struct {
	conn   spi.Conn
	closer io.Closer
}

// NewSPIBus adapts a periph.io SPI connection (mode 0, 8 bits).
func NewSPIBus(c spi.Conn) Bus {
	return &spiBus{conn: c}
}

func (b *spiBus) ReadRegister(reg Register) (byte, error) {
	w := []byte{byte(reg) & _SPI_READ, 0x00}
	r := make([]byte, len(w))
	if err := b.conn.Tx(w, r); err != nil {
		return 0, err
	}
	return r[1], nil
}

func (b *spiBus) ReadRegisters(reg Register, buf []byte) error {
	w := make([]byte, len(buf)+1)
	w[0] = byte(reg) & _SPI_READ
	r := make([]byte, len(w))
	if err := b.conn.Tx(w, r); err != nil {
		return err
	}
	copy(buf, r[1:])
	return nil
}

func (b *spiBus) WriteRegister(reg Register, data ...byte) error {
	return b.conn.Tx(append([]byte{byte(reg) | _SPI_WRITE}, data...), nil)
}

func (b *spiBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// i2cBus talks to the chip through a register-addressed I2C device.
type i2cBus struct {
	dev    mmr.Dev8
	closer io.Closer
}

// NewI2CBus adapts a periph.io I2C bus for the module at addr.
func NewI2CBus(b i2c.Bus, addr uint16) Bus {
	return &i2cBus{dev: mmr.Dev8{Conn: &i2c.Dev{Bus: b, Addr: addr}, Order: binary.BigEndian}}
}

func (b *i2cBus) ReadRegister(reg Register) (byte, error) {
	return b.dev.ReadUint8(uint8(reg))
}

func (b *i2cBus) ReadRegisters(reg Register, buf []byte) error {
	return b.dev.Conn.Tx([]byte{byte(reg)}, buf)
}

func (b *i2cBus) WriteRegister(reg Register, data ...byte) error {
	if len(data) == 1 {
		return b.dev.WriteUint8(uint8(reg), data[0])
	}
	return b.dev.Conn.Tx(append([]byte{byte(reg)}, data...), nil)
}

func (b *i2cBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Transport selects the bus the module is wired to.
type Transport uint8

const (
	// TransportSPI is the RFM95x native interface.
	TransportSPI Transport = iota
	// TransportI2C is used with I2C bridged modules.
	TransportI2C
)

// Config holds the configuration for the Linux/periph.io driver.
type Config struct {
	Configuration
	// Transport selects SPI or I2C.
	// Defaults to TransportSPI.
	Transport Transport
	// SpiBusPath is the SPI port name or path (e.g., "/dev/spidev0.0").
	// Defaults to the first available port if not provided.
	SpiBusPath string
	// SpiClockHz is the SPI clock frequency in Hz.
	// Defaults to 8000000 (8MHz) if not provided. The chip accepts up to 10MHz.
	SpiClockHz int
	// I2CBus is the I2C bus name (e.g., "1" or "/dev/i2c-1").
	// Defaults to the first available bus if not provided.
	I2CBus string
	// I2CAddr is the 7-bit address of the module. Required with TransportI2C.
	I2CAddr uint16
	// ResetPin is the GPIO pin number (BCM numbering) wired to RESET.
	// Defaults to 25 if not provided.
	ResetPin int
	// DIOPins are the GPIO pin numbers (BCM numbering) wired to DIO0..DIO5.
	// Optional, 0 leaves the line unconfigured.
	DIOPins [6]int
}

// Open initializes periph.io, opens the bus and pins described by c and returns
// the transceiver in Sleep mode. Close the returned Device to release the bus.
func Open(c Config) (*Device[Sleep], error) {
	// Fail on a bad radio configuration before touching the host.
	if err := c.Configuration.Validate(); err != nil {
		return nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	bus, err := openBus(&c)
	if err != nil {
		return nil, err
	}

	pins, err := openPins(&c)
	if err != nil {
		bus.Close()
		return nil, err
	}

	dev, err := New(bus, pins, c.Configuration)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return dev, nil
}

type busCloser interface {
	Bus
	io.Closer
}

func openBus(c *Config) (busCloser, error) {
	switch c.Transport {
	case TransportSPI:
		p, err := spireg.Open(c.SpiBusPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SPI port: %w", err)
		}
		if c.SpiClockHz == 0 {
			c.SpiClockHz = 8000000
		}
		sc, err := p.Connect(physic.Frequency(c.SpiClockHz)*physic.Hertz, spi.Mode0, 8)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to create SPI connection: %w", err)
		}
		globalLogger.Debug("SPI connection: " + fmt.Sprint(sc))
		return &spiBus{conn: sc, closer: p}, nil
	case TransportI2C:
		if c.I2CAddr == 0 {
			return nil, fmt.Errorf("%w: I2CAddr required for I2C transport", ErrPkg)
		}
		b, err := i2creg.Open(c.I2CBus)
		if err != nil {
			return nil, fmt.Errorf("failed to open I2C bus: %w", err)
		}
		bus := NewI2CBus(b, c.I2CAddr).(*i2cBus)
		bus.closer = b
		return bus, nil
	default:
		return nil, fmt.Errorf("%w: unknown transport %d", ErrPkg, c.Transport)
	}
}

func openPins(c *Config) (Pins, error) {
	var pins Pins
	if c.ResetPin == 0 {
		c.ResetPin = 25
	}
	rst, err := pinByNumber(c.ResetPin)
	if err != nil {
		return pins, err
	}
	pins.Reset = rst

	dio := []*Pin{&pins.DIO0, &pins.DIO1, &pins.DIO2, &pins.DIO3, &pins.DIO4, &pins.DIO5}
	for i, n := range c.DIOPins {
		if n == 0 {
			continue
		}
		p, err := pinByNumber(n)
		if err != nil {
			return pins, err
		}
		*dio[i] = p
	}
	return pins, nil
}

func pinByNumber(n int) (Pin, error) {
	name := fmt.Sprintf("GPIO%d", n)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to open pin %s", name)
	}
	return NewPeriphPin(p), nil
}
