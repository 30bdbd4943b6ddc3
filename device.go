package rfm95x

import (
	"fmt"
	"io"
	"strconv"
)

// --- Mode markers ---
//
// A Device is parameterized by one of the zero-size types below. The type tells
// the compiler which operating mode the chip is in, so that operations the chip
// rejects in that mode do not type-check.

type (
	Sleep        struct{}
	StandBy      struct{}
	FSTX         struct{}
	TX           struct{}
	FSRX         struct{}
	RXContinuous struct{}
	RXSingle     struct{}
	CAD          struct{}
)

func (Sleep) OperatingMode() OperatingMode        { return ModeSleep }
func (StandBy) OperatingMode() OperatingMode      { return ModeStandBy }
func (FSTX) OperatingMode() OperatingMode         { return ModeFSTX }
func (TX) OperatingMode() OperatingMode           { return ModeTX }
func (FSRX) OperatingMode() OperatingMode         { return ModeFSRX }
func (RXContinuous) OperatingMode() OperatingMode { return ModeRXContinuous }
func (RXSingle) OperatingMode() OperatingMode     { return ModeRXSingle }
func (CAD) OperatingMode() OperatingMode          { return ModeCAD }

// Mode is the closed set of mode markers.
type Mode interface {
	Sleep | StandBy | FSTX | TX | FSRX | RXContinuous | RXSingle | CAD
	OperatingMode() OperatingMode
}

// Tunable modes have the frequency synthesizer stopped.
type Tunable interface {
	Mode
	Sleep | StandBy
}

// Receiver modes can drain the receive FIFO.
type Receiver interface {
	Mode
	FSRX | RXContinuous | RXSingle
}

// Transmitter modes can load the transmit FIFO.
type Transmitter interface {
	Mode
	FSTX | TX
}

// core is the state shared by every handle of one physical radio. Exactly one
// live handle points at it at any time.
type core struct {
	bus  Bus
	pins Pins
	cfg  Configuration
}

// Device is a handle on an RFM95x transceiver whose operating mode is M.
//
// Transition methods (ToSleep, ToStandBy, ...) consume the handle: after a
// successful transition every method on the old value returns ErrHandleConsumed.
// A Device is not safe for concurrent use.
type Device[M Mode] struct {
	c *core
}

// New initializes the transceiver on bus and returns it in Sleep mode with the
// LoRa modem selected.
//
// cfg is checked before any pin or bus access. The reset line is then released,
// the chip is put to sleep and power, gain, bandwidth and frequency are written in
// that order. If a bus transaction fails, registers written before the failure
// keep their new value and no handle is returned.
func New(bus Bus, pins Pins, cfg Configuration) (*Device[Sleep], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: bus not configured", ErrPkg)
	}
	if pins.Reset == nil {
		return nil, fmt.Errorf("%w: %w", ErrPkg, ErrPinsNotConfigured)
	}

	globalLogger.Info("Initializing RFM95x...")

	c := &core{bus: bus, pins: pins}

	if err := SetHigh(pins.Reset); err != nil {
		return nil, fmt.Errorf("%w: failed to release reset: %w", ErrPkg, err)
	}
	if err := c.setMode(ModeSleep); err != nil {
		return nil, err
	}
	if err := c.apply(cfg); err != nil {
		return nil, err
	}
	if err := c.setModulation(ModulationLoRa); err != nil {
		return nil, err
	}

	globalLogger.Info("RFM95x configured: " + c.cfg.String())
	return &Device[Sleep]{c: c}, nil
}

func (dev *Device[M]) acquire() (*core, error) {
	if dev == nil || dev.c == nil {
		return nil, fmt.Errorf("%w: %w", ErrPkg, ErrHandleConsumed)
	}
	return dev.c, nil
}

// Mode returns the operating mode encoded in the handle's type.
func (dev *Device[M]) Mode() OperatingMode {
	var m M
	return m.OperatingMode()
}

// Configuration returns the parameters last written to the chip.
func (dev *Device[M]) Configuration() Configuration {
	if dev == nil || dev.c == nil {
		return Configuration{}
	}
	return dev.c.cfg
}

func (dev *Device[M]) String() string {
	if dev == nil || dev.c == nil {
		return "RFM95x(consumed)"
	}
	cfg := dev.c.cfg
	return fmt.Sprintf("RFM95x(Mode=%s, Power=%ddBm, Gain=G%d, Frequency=%sMHz, Bandwidth=%s)",
		dev.Mode(),
		cfg.power,
		cfg.gain,
		strconv.FormatFloat(cfg.frequency, 'f', 3, 64),
		cfg.bandwidth,
	)
}

// --- Transitions ---

func transition[To, From Mode](dev *Device[From]) (*Device[To], error) {
	c, err := dev.acquire()
	if err != nil {
		return nil, err
	}
	var to To
	if err := c.setMode(to.OperatingMode()); err != nil {
		return nil, err
	}
	dev.c = nil
	globalLogger.Debug("mode " + dev.Mode().String() + " -> " + to.OperatingMode().String())
	return &Device[To]{c: c}, nil
}

// ToSleep moves the chip to Sleep mode and consumes dev.
func (dev *Device[M]) ToSleep() (*Device[Sleep], error) { return transition[Sleep](dev) }

// ToStandBy moves the chip to StandBy mode and consumes dev.
func (dev *Device[M]) ToStandBy() (*Device[StandBy], error) { return transition[StandBy](dev) }

// ToFSTX moves the chip to transmit frequency synthesis and consumes dev.
func (dev *Device[M]) ToFSTX() (*Device[FSTX], error) { return transition[FSTX](dev) }

// ToTX moves the chip to TX mode and consumes dev.
func (dev *Device[M]) ToTX() (*Device[TX], error) { return transition[TX](dev) }

// ToFSRX moves the chip to receive frequency synthesis and consumes dev.
func (dev *Device[M]) ToFSRX() (*Device[FSRX], error) { return transition[FSRX](dev) }

// ToRXContinuous moves the chip to continuous receive and consumes dev.
func (dev *Device[M]) ToRXContinuous() (*Device[RXContinuous], error) {
	return transition[RXContinuous](dev)
}

// ToRXSingle moves the chip to single receive and consumes dev.
func (dev *Device[M]) ToRXSingle() (*Device[RXSingle], error) { return transition[RXSingle](dev) }

// ToCAD starts channel activity detection and consumes dev.
func (dev *Device[M]) ToCAD() (*Device[CAD], error) { return transition[CAD](dev) }

// Dynamic consumes dev and returns a Radio that tracks the mode at runtime.
func (dev *Device[M]) Dynamic() (*Radio, error) {
	c, err := dev.acquire()
	if err != nil {
		return nil, err
	}
	dev.c = nil
	return &Radio{c: c, mode: dev.Mode()}, nil
}

// Close consumes dev and closes the bus if it holds OS resources. The chip is
// left in its current mode.
func (dev *Device[M]) Close() error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	dev.c = nil
	return c.close()
}

// --- Unrestricted operations ---

// SetPower sets the output power in dBm (2 to 16).
func (dev *Device[M]) SetPower(dBm int) error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	return c.setPower(dBm)
}

// SetGain sets the LNA gain code (1 to 5).
func (dev *Device[M]) SetGain(gain int) error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	return c.setGain(gain)
}

// SetBandwidth sets the channel bandwidth.
func (dev *Device[M]) SetBandwidth(bw Bandwidth) error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	return c.setBandwidth(bw)
}

// Version returns the silicon revision from RegVersion.
func (dev *Device[M]) Version() (byte, error) {
	c, err := dev.acquire()
	if err != nil {
		return 0, err
	}
	return readRegister(c.bus, RegVersion)
}

// CheckConnection reads RegVersion and fails unless it reports an SX1276.
func (dev *Device[M]) CheckConnection() error {
	v, err := dev.Version()
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if v == 0x00 || v == 0xff {
		return fmt.Errorf("%w: no answer on bus (version 0x%02X), check wiring/power", ErrPkg, v)
	}
	if v != ChipVersion {
		return fmt.Errorf("%w: unexpected version 0x%02X, want 0x%02X", ErrPkg, v, ChipVersion)
	}
	return nil
}

// --- Mode-restricted operations ---

// SetFrequency retunes the carrier. Only Sleep and StandBy handles are accepted.
func SetFrequency[M Tunable](dev *Device[M], mhz float64) error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	return c.setFrequency(mhz)
}

// SetModulation selects FSK/OOK or LoRa. The chip only accepts the change in Sleep.
func SetModulation(dev *Device[Sleep], m Modulation) error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	return c.setModulation(m)
}

// ReadBuffer drains the receive FIFO from the start of the last packet. It
// returns the whole FIFO and the number of payload bytes reported by the chip;
// bytes past n are stale.
func ReadBuffer[M Receiver](dev *Device[M]) (buf [FifoSize]byte, n int, err error) {
	c, err := dev.acquire()
	if err != nil {
		return buf, 0, err
	}
	return c.readBuffer()
}

// WriteBuffer loads data into the transmit FIFO at the TX base address.
// The caller must keep len(data) within FifoSize.
func WriteBuffer[M Transmitter](dev *Device[M], data []byte) error {
	c, err := dev.acquire()
	if err != nil {
		return err
	}
	return c.writeBuffer(data)
}

// --- Register level operations ---

func (c *core) setMode(m OperatingMode) error {
	return writeBitfield(c.bus, RegOpMode, m.Code(), _MODE_HIGH, _MODE_LOW)
}

func (c *core) setModulation(m Modulation) error {
	if m != ModulationFSK && m != ModulationLoRa {
		return invalidParameter("modulation %d", m)
	}
	if err := writeBitfield(c.bus, RegOpMode, byte(m), _LONG_RANGE_MODE, _LONG_RANGE_MODE); err != nil {
		return err
	}
	globalLogger.Debug("modulation set to " + m.String())
	return nil
}

// apply writes every field of cfg. It is not transactional.
func (c *core) apply(cfg Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := c.setPower(cfg.power); err != nil {
		return err
	}
	if err := c.setGain(cfg.gain); err != nil {
		return err
	}
	if err := c.setBandwidth(cfg.bandwidth); err != nil {
		return err
	}
	return c.setFrequency(cfg.frequency)
}

func (c *core) setPower(dBm int) error {
	if !ValidPower(dBm) {
		return invalidParameter("power %d dBm outside [%d, %d)", dBm, minPower, maxPower)
	}
	if err := writeBitfield(c.bus, RegPaConfig, encodePower(dBm), _OUTPUT_POWER_HIGH, _OUTPUT_POWER_LOW); err != nil {
		return err
	}
	c.cfg.power = dBm
	globalLogger.Debug("power set to " + strconv.Itoa(dBm) + " dBm")
	return nil
}

func (c *core) setGain(gain int) error {
	if !ValidGain(gain) {
		return invalidParameter("gain %d outside [%d, %d)", gain, minGain, maxGain)
	}
	if err := writeBitfield(c.bus, RegLna, byte(gain), _LNA_GAIN_HIGH, _LNA_GAIN_LOW); err != nil {
		return err
	}
	c.cfg.gain = gain
	globalLogger.Debug("gain set to G" + strconv.Itoa(gain))
	return nil
}

func (c *core) setBandwidth(bw Bandwidth) error {
	if !bw.Valid() {
		return invalidParameter("bandwidth code %d", bw)
	}
	if err := writeBitfield(c.bus, RegModemConfig1, bw.Code(), _BW_HIGH, _BW_LOW); err != nil {
		return err
	}
	c.cfg.bandwidth = bw
	globalLogger.Debug("bandwidth set to " + bw.String())
	return nil
}

// setFrequency writes the three Frf bytes MSB first. The stored configuration
// only changes once all three are written.
func (c *core) setFrequency(mhz float64) error {
	if !ValidFrequency(mhz) {
		return invalidParameter("frequency %g MHz outside [%g, %g)", mhz, minFrequency, maxFrequency)
	}
	frf := FrequencyBytes(mhz)
	for i, reg := range [3]Register{RegFrfMsb, RegFrfMid, RegFrfLsb} {
		if err := writeBitfield(c.bus, reg, frf[i], _BYTE_HIGH, _BYTE_LOW); err != nil {
			return err
		}
	}
	c.cfg.frequency = mhz
	globalLogger.Debug("frequency set to " + strconv.FormatFloat(mhz, 'f', 3, 64) + " MHz")
	return nil
}

func (c *core) readBuffer() (buf [FifoSize]byte, n int, err error) {
	addr, err := readRegister(c.bus, RegFifoRxCurrentAddr)
	if err != nil {
		return buf, 0, err
	}
	if err := writeBitfield(c.bus, RegFifoAddrPtr, addr, _BYTE_HIGH, _BYTE_LOW); err != nil {
		return buf, 0, err
	}
	count, err := readRegister(c.bus, RegRxNbBytes)
	if err != nil {
		return buf, 0, err
	}
	if err := readRegisters(c.bus, RegFifo, buf[:]); err != nil {
		return buf, 0, err
	}
	return buf, int(count), nil
}

func (c *core) writeBuffer(data []byte) error {
	addr, err := readRegister(c.bus, RegFifoTxBaseAddr)
	if err != nil {
		return err
	}
	if err := writeBitfield(c.bus, RegFifoAddrPtr, addr, _BYTE_HIGH, _BYTE_LOW); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return writeRegister(c.bus, RegFifo, data...)
}

func (c *core) close() error {
	closer, ok := c.bus.(io.Closer)
	if !ok {
		return nil
	}
	if err := closer.Close(); err != nil {
		globalLogger.Warn("Failed to close bus")
		return fmt.Errorf("%w: failed to close bus: %w", ErrPkg, err)
	}
	globalLogger.Info("Bus closed.")
	return nil
}
