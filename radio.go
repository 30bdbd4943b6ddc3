package rfm95x

import "fmt"

// Radio is a transceiver handle whose operating mode is only known at runtime,
// for applications that pick the mode from input or configuration.
//
// Every mode-restricted method checks the current mode before touching the bus
// and returns ErrModeNotPermitted when the chip would reject the operation. Use
// Typed to get back a compile-time checked Device.
type Radio struct {
	c    *core
	mode OperatingMode
}

func (r *Radio) acquire() (*core, error) {
	if r == nil || r.c == nil {
		return nil, fmt.Errorf("%w: %w", ErrPkg, ErrHandleConsumed)
	}
	return r.c, nil
}

func (r *Radio) permit(allowed bool, op string) (*core, error) {
	c, err := r.acquire()
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %w: %s in %s", ErrPkg, ErrModeNotPermitted, op, r.mode)
	}
	return c, nil
}

// Mode returns the last mode successfully written to the chip.
func (r *Radio) Mode() OperatingMode { return r.mode }

// Configuration returns the parameters last written to the chip.
func (r *Radio) Configuration() Configuration {
	if r == nil || r.c == nil {
		return Configuration{}
	}
	return r.c.cfg
}

// SetMode writes m to RegOpMode. Every transition is allowed. On failure the
// recorded mode is unchanged.
func (r *Radio) SetMode(m OperatingMode) error {
	c, err := r.acquire()
	if err != nil {
		return err
	}
	if int(m) >= len(OperatingModes) {
		return invalidParameter("operating mode %d", m)
	}
	if err := c.setMode(m); err != nil {
		return err
	}
	globalLogger.Debug("mode " + r.mode.String() + " -> " + m.String())
	r.mode = m
	return nil
}

// SetPower sets the output power in dBm (2 to 16).
func (r *Radio) SetPower(dBm int) error {
	c, err := r.acquire()
	if err != nil {
		return err
	}
	return c.setPower(dBm)
}

// SetGain sets the LNA gain code (1 to 5).
func (r *Radio) SetGain(gain int) error {
	c, err := r.acquire()
	if err != nil {
		return err
	}
	return c.setGain(gain)
}

// SetBandwidth sets the channel bandwidth.
func (r *Radio) SetBandwidth(bw Bandwidth) error {
	c, err := r.acquire()
	if err != nil {
		return err
	}
	return c.setBandwidth(bw)
}

// SetFrequency retunes the carrier. Sleep or StandBy only.
func (r *Radio) SetFrequency(mhz float64) error {
	c, err := r.permit(r.mode.CanTune(), "SetFrequency")
	if err != nil {
		return err
	}
	return c.setFrequency(mhz)
}

// SetModulation selects FSK/OOK or LoRa. Sleep only.
func (r *Radio) SetModulation(m Modulation) error {
	c, err := r.permit(r.mode.CanSelectModulation(), "SetModulation")
	if err != nil {
		return err
	}
	return c.setModulation(m)
}

// ReadBuffer drains the receive FIFO. FSRX, RXContinuous or RXSingle only.
func (r *Radio) ReadBuffer() (buf [FifoSize]byte, n int, err error) {
	c, err := r.permit(r.mode.CanReceive(), "ReadBuffer")
	if err != nil {
		return buf, 0, err
	}
	return c.readBuffer()
}

// WriteBuffer loads the transmit FIFO. FSTX or TX only.
func (r *Radio) WriteBuffer(data []byte) error {
	c, err := r.permit(r.mode.CanTransmit(), "WriteBuffer")
	if err != nil {
		return err
	}
	return c.writeBuffer(data)
}

// Close consumes r and closes the bus if it holds OS resources.
func (r *Radio) Close() error {
	c, err := r.acquire()
	if err != nil {
		return err
	}
	r.c = nil
	return c.close()
}

func (r *Radio) String() string {
	if r == nil || r.c == nil {
		return "RFM95x(consumed)"
	}
	return fmt.Sprintf("RFM95x(Mode=%s, %s)", r.mode, r.c.cfg)
}

// Typed consumes r and returns a Device typed for mode M. It fails with
// ErrModeMismatch, leaving r usable, when r is in another mode.
func Typed[M Mode](r *Radio) (*Device[M], error) {
	c, err := r.acquire()
	if err != nil {
		return nil, err
	}
	var m M
	if r.mode != m.OperatingMode() {
		return nil, fmt.Errorf("%w: %w: radio is in %s, want %s", ErrPkg, ErrModeMismatch, r.mode, m.OperatingMode())
	}
	r.c = nil
	return &Device[M]{c: c}, nil
}
