package common

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{50, 0, 100, 50},
		{-10, 0, 100, 0},
		{150, 0, 100, 100},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(120, 0, 100); got != 100 {
		t.Errorf("ClampInt(120, 0, 100) = %d, want 100", got)
	}
	if got := ClampInt(-5, 0, 100); got != 0 {
		t.Errorf("ClampInt(-5, 0, 100) = %d, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{0.825, 0.83},
		{0.824999, 0.82},
		{0.5, 0.5},
		{1.005, 1.0}, // 1.005 is stored as 1.00499... in float64
	}

	for _, tt := range tests {
		if got := Round2(tt.v); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(10, 4); got != 2.5 {
		t.Errorf("SafeDiv(10, 4) = %v, want 2.5", got)
	}
	if got := SafeDiv(10, 0); got != 0 {
		t.Errorf("SafeDiv(10, 0) = %v, want 0", got)
	}
}
