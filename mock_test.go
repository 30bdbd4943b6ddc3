package rfm95x

import (
	"errors"
	"testing"
)

// --- Mocks ---

var errBus = errors.New("bus error")

type busOp struct {
	write bool
	reg   Register
	data  []byte // bytes written, or nil with n bytes read
	n     int
}

// mockBus emulates the register file. Every transaction is recorded in ops.
type mockBus struct {
	regs    [256]byte
	fifoRx  []byte // returned by block reads of RegFifo
	fifoTx  []byte // collected from writes to RegFifo
	ops     []busOp
	failAt  int // fail the failAt-th transaction (1-based), 0 never fails
	closed  int
	onClose error
}

func (m *mockBus) record(op busOp) error {
	m.ops = append(m.ops, op)
	if m.failAt != 0 && len(m.ops) == m.failAt {
		return errBus
	}
	return nil
}

func (m *mockBus) ReadRegister(reg Register) (byte, error) {
	if err := m.record(busOp{reg: reg, n: 1}); err != nil {
		return 0, err
	}
	return m.regs[reg], nil
}

func (m *mockBus) ReadRegisters(reg Register, buf []byte) error {
	if err := m.record(busOp{reg: reg, n: len(buf)}); err != nil {
		return err
	}
	if reg == RegFifo {
		copy(buf, m.fifoRx)
		return nil
	}
	copy(buf, m.regs[reg:])
	return nil
}

func (m *mockBus) WriteRegister(reg Register, data ...byte) error {
	if err := m.record(busOp{write: true, reg: reg, data: append([]byte(nil), data...)}); err != nil {
		return err
	}
	if reg == RegFifo {
		m.fifoTx = append(m.fifoTx, data...)
		return nil
	}
	copy(m.regs[reg:], data)
	return nil
}

// writes returns the register writes recorded so far.
func (m *mockBus) writes() []busOp {
	var w []busOp
	for _, op := range m.ops {
		if op.write {
			w = append(w, op)
		}
	}
	return w
}

func (m *mockBus) reset() {
	m.ops = nil
	m.failAt = 0
}

// closingBus is a mockBus that owns an OS resource.
type closingBus struct {
	*mockBus
}

func (b closingBus) Close() error {
	b.closed++
	return b.onClose
}

type mockPin struct {
	level  Level
	calls  int
	busOps int // len(bus.ops) at the first Out call
	bus    *mockBus
	err    error
}

func (p *mockPin) Out(l Level) error {
	if p.calls == 0 && p.bus != nil {
		p.busOps = len(p.bus.ops)
	}
	p.calls++
	if p.err != nil {
		return p.err
	}
	p.level = l
	return nil
}

// newTestDevice returns a Device in Sleep built with the default configuration
// and a bus whose transaction log is cleared.
func newTestDevice(t testing.TB) (*Device[Sleep], *mockBus) {
	t.Helper()
	bus := &mockBus{}
	bus.regs[RegVersion] = ChipVersion
	dev, err := New(bus, Pins{Reset: &mockPin{}}, DefaultConfiguration())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bus.reset()
	return dev, bus
}
