package rfm95x

// Level represents the logical level of a pin (Low or High).
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Bus represents a register-addressed connection to the transceiver.
// Implementations exist for SPI and I2C (see adapter-periph.go, adapter-gobot.go
// and adapter-tinygo.go). The driver assumes it is the only user of the bus.
type Bus interface {
	// ReadRegister returns the byte stored at reg.
	ReadRegister(reg Register) (byte, error)
	// ReadRegisters reads len(buf) consecutive bytes starting at reg.
	// For RegFifo the chip keeps returning FIFO bytes from the address pointer.
	ReadRegisters(reg Register, buf []byte) error
	// WriteRegister writes data starting at reg.
	WriteRegister(reg Register, data ...byte) error
}

// Pin represents a generic digital output line (reset, DIO).
type Pin interface {
	// Out drives the pin to the given level.
	Out(l Level) error
}

// Pins is the set of control lines wired to the module.
// Only Reset is driven by the driver, the DIO lines are kept for the
// application and may be nil.
type Pins struct {
	Reset Pin
	DIO0  Pin
	DIO1  Pin
	DIO2  Pin
	DIO3  Pin
	DIO4  Pin
	DIO5  Pin
}

// SetHigh drives p high.
func SetHigh(p Pin) error { return p.Out(High) }

// SetLow drives p low.
func SetLow(p Pin) error { return p.Out(Low) }
