//go:build !tinygo

package rfm95x

import (
	"io"

	"gobot.io/x/gobot/drivers/gpio"
	"gobot.io/x/gobot/drivers/i2c"
)

// gobotBus drives the chip through a gobot I2C connection, for applications
// that already run on a gobot adaptor (Raspberry Pi, Tinker Board, ...).
type gobotBus struct {
	conn i2c.Connection
}

// NewGobotBus adapts a gobot I2C connection, as returned by
// i2c.Connector.GetConnection for the module's address.
func NewGobotBus(c i2c.Connection) Bus {
	return &gobotBus{conn: c}
}

func (b *gobotBus) ReadRegister(reg Register) (byte, error) {
	return b.conn.ReadByteData(uint8(reg))
}

func (b *gobotBus) ReadRegisters(reg Register, buf []byte) error {
	if err := b.conn.WriteByte(byte(reg)); err != nil {
		return err
	}
	_, err := io.ReadFull(b.conn, buf)
	return err
}

func (b *gobotBus) WriteRegister(reg Register, data ...byte) error {
	if len(data) == 1 {
		return b.conn.WriteByteData(uint8(reg), data[0])
	}
	// WriteBlockData is limited to 32 bytes by SMBus, the FIFO is not.
	_, err := b.conn.Write(append([]byte{byte(reg)}, data...))
	return err
}

// gobotPin drives a named pin of a gobot adaptor.
type gobotPin struct {
	w   gpio.DigitalWriter
	pin string
}

// NewGobotPin adapts the pin named pin on a gobot adaptor.
func NewGobotPin(w gpio.DigitalWriter, pin string) Pin {
	return &gobotPin{w: w, pin: pin}
}

func (p *gobotPin) Out(l Level) error {
	if l == High {
		return p.w.DigitalWrite(p.pin, 1)
	}
	return p.w.DigitalWrite(p.pin, 0)
}
