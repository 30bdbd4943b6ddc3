//go:build !tinygo

package rfm95x

import (
	"log"
	"os"
)

func init() {
	globalLogger = &stdLogger{l: log.New(os.Stderr, "rfm95x: ", log.LstdFlags)}
}

// stdLogger writes through the standard library log package. Debug messages are
// dropped unless RFM95X_DEBUG is set in the environment.
type stdLogger struct {
	l *log.Logger
}

func (s *stdLogger) Debug(msg string) {
	if os.Getenv("RFM95X_DEBUG") == "" {
		return
	}
	s.l.Print("[DEBUG] " + msg)
}

func (s *stdLogger) Info(msg string) {
	s.l.Print("[INFO]  " + msg)
}

func (s *stdLogger) Warn(msg string) {
	s.l.Print("[WARN]  " + msg)
}

func (s *stdLogger) Error(msg string) {
	s.l.Print("[ERROR] " + msg)
}
