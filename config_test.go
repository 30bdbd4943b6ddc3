package rfm95x

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidRanges(t *testing.T) {
	powers := map[int]bool{1: false, 2: true, 10: true, 16: true, 17: false}
	for p, want := range powers {
		if got := ValidPower(p); got != want {
			t.Errorf("ValidPower(%d) = %v, want %v", p, got, want)
		}
	}

	gains := map[int]bool{0: false, 1: true, 5: true, 6: false}
	for g, want := range gains {
		if got := ValidGain(g); got != want {
			t.Errorf("ValidGain(%d) = %v, want %v", g, got, want)
		}
	}

	freqs := map[float64]bool{867.99: false, 868.0: true, 910.0: true, 914.99: true, 915.0: false}
	for f, want := range freqs {
		if got := ValidFrequency(f); got != want {
			t.Errorf("ValidFrequency(%g) = %v, want %v", f, got, want)
		}
	}
	if ValidFrequency(math.NaN()) {
		t.Error("ValidFrequency(NaN) = true")
	}
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	if cfg.Power() != 10 || cfg.Gain() != 4 || cfg.Frequency() != 910.0 || cfg.Bandwidth() != Bw020_8 {
		t.Errorf("Unexpected default configuration: %s", cfg)
	}
	if !cfg.Verify() {
		t.Error("Default configuration does not verify")
	}
}

func TestZeroConfigurationInvalid(t *testing.T) {
	var cfg Configuration
	if cfg.Verify() {
		t.Error("Zero configuration verifies")
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

func TestBuilder(t *testing.T) {
	cfg, err := NewBuilder().
		Power(2).
		Gain(4).
		Frequency(910).
		Bandwidth(Bw062_5).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.Power() != 2 || cfg.Gain() != 4 || cfg.Frequency() != 910 || cfg.Bandwidth() != Bw062_5 {
		t.Errorf("Unexpected configuration: %s", cfg)
	}
}

func TestBuilderBoundaries(t *testing.T) {
	base := NewBuilder().Power(10).Gain(3).Frequency(900).Bandwidth(Bw125_0)

	tests := []struct {
		name string
		b    Builder
		ok   bool
	}{
		{"min power", base.Power(2), true},
		{"max power", base.Power(16), true},
		{"power too low", base.Power(1), false},
		{"power too high", base.Power(17), false},
		{"min gain", base.Gain(1), true},
		{"max gain", base.Gain(5), true},
		{"gain zero", base.Gain(0), false},
		{"gain too high", base.Gain(6), false},
		{"min frequency", base.Frequency(868.0), true},
		{"frequency below band", base.Frequency(867.9), false},
		{"frequency at upper bound", base.Frequency(915.0), false},
		{"unknown bandwidth", base.Bandwidth(Bandwidth(10)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.b.Build()
			if tt.ok {
				if err != nil {
					t.Errorf("Build failed: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
			if cfg != (Configuration{}) {
				t.Errorf("Expected zero configuration on error, got %s", cfg)
			}
		})
	}
}

func TestBuilderMissingFields(t *testing.T) {
	_, err := NewBuilder().Power(10).Frequency(900).Build()
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Expected ErrInvalidParameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "gain, bandwidth") {
		t.Errorf("Expected missing gain and bandwidth in %q", err)
	}
}

func TestBuilderIsValue(t *testing.T) {
	low := NewBuilder().Power(2).Gain(1).Frequency(868).Bandwidth(Bw007_8)
	high := low.Power(16)

	a, err := low.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := high.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if a.Power() != 2 || b.Power() != 16 {
		t.Errorf("Setter mutated the receiver: %d, %d", a.Power(), b.Power())
	}
}

func TestConfigurationString(t *testing.T) {
	got := DefaultConfiguration().String()
	for _, want := range []string{"Power=10dBm", "Gain=G4", "Frequency=910.000MHz", "Bandwidth=" + Bw020_8.String()} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %q", want, got)
		}
	}
}
