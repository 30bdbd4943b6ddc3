package rfm95x

import (
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	SetLogger(nil)
	os.Exit(m.Run())
}

type recordingLogger struct {
	debug, info, warn, errors []string
}

func (l *recordingLogger) Debug(msg string) { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Info(msg string)  { l.info = append(l.info, msg) }
func (l *recordingLogger) Warn(msg string)  { l.warn = append(l.warn, msg) }
func (l *recordingLogger) Error(msg string) { l.errors = append(l.errors, msg) }

func TestLogger(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	dev, _ := newTestDevice(t)
	if len(rec.info) == 0 {
		t.Error("Expected construction to be logged")
	}

	if _, err := dev.ToStandBy(); err != nil {
		t.Fatal(err)
	}
	if got := rec.debug[len(rec.debug)-1]; got != "mode Sleep -> StandBy" {
		t.Errorf("Expected transition debug message, got %q", got)
	}
}

func TestLoggerTransportError(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	bus := &mockBus{failAt: 1}
	if _, err := readRegister(bus, RegVersion); err == nil {
		t.Fatal("Expected read failure")
	}
	if len(rec.errors) != 1 || !strings.Contains(rec.errors[0], "RegVersion") {
		t.Errorf("Expected one error naming RegVersion, got %v", rec.errors)
	}
}
