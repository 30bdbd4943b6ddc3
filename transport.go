package rfm95x

// --- Register transport ---
//
// All register mutations go through writeBitfield. None of these helpers lock:
// a read-modify-write on the same register from two callers at once will lose
// one of the updates.

func readRegister(bus Bus, reg Register) (byte, error) {
	v, err := bus.ReadRegister(reg)
	if err != nil {
		globalLogger.Error("bus read failed on " + reg.String())
		return 0, &TransportError{Op: "read", Register: reg, Err: err}
	}
	return v, nil
}

func readRegisters(bus Bus, reg Register, buf []byte) error {
	if err := bus.ReadRegisters(reg, buf); err != nil {
		globalLogger.Error("bus block read failed on " + reg.String())
		return &TransportError{Op: "read", Register: reg, Err: err}
	}
	return nil
}

func writeRegister(bus Bus, reg Register, data ...byte) error {
	if err := bus.WriteRegister(reg, data...); err != nil {
		globalLogger.Error("bus write failed on " + reg.String())
		return &TransportError{Op: "write", Register: reg, Err: err}
	}
	return nil
}

// fieldMask returns the mask covering bits [low, high] of a byte.
func fieldMask(high, low uint8) byte {
	return byte((uint16(1)<<(high-low+1) - 1) << low)
}

// setField returns cur with bits [low, high] replaced by value.
func setField(cur, value byte, high, low uint8) byte {
	mask := fieldMask(high, low)
	return cur&^mask | (value<<low)&mask
}

// writeBitfield reads reg, replaces bits [low, high] with value and writes the
// byte back. Bits outside the field are preserved.
func writeBitfield(bus Bus, reg Register, value byte, high, low uint8) error {
	cur, err := readRegister(bus, reg)
	if err != nil {
		return err
	}
	return writeRegister(bus, reg, setField(cur, value, high, low))
}
