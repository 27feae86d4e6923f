package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Round down",
			input:    10.234,
			expected: 10.23,
		},
		{
			name:     "Round up",
			input:    10.236,
			expected: 10.24,
		},
		{
			name:     "Fractional cents",
			input:    99.999,
			expected: 100.0,
		},
		{
			name:     "Already two decimals",
			input:    1602.05,
			expected: 1602.05,
		},
		{
			name:     "Negative value",
			input:    -3.456,
			expected: -3.46,
		},
		{
			name:     "Zero",
			input:    0.0,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Errorf("IsZero(0.005) = false, expected true")
	}
	if IsZero(0.02) {
		t.Errorf("IsZero(0.02) = true, expected false")
	}
	if !IsZero(-0.005) {
		t.Errorf("IsZero(-0.005) = false, expected true")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Regular value", 123.45, true},
		{"Zero", 0, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinite(tt.input); result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.00, 100.009, 0.01) {
		t.Errorf("WithinTolerance(100.00, 100.009, 0.01) = false, expected true")
	}
	if WithinTolerance(100.00, 100.02, 0.01) {
		t.Errorf("WithinTolerance(100.00, 100.02, 0.01) = true, expected false")
	}
}

func TestApplyPercentage(t *testing.T) {
	result := ApplyPercentage(80000, 7.5)
	if math.Abs(result-6000) > 1e-9 {
		t.Errorf("ApplyPercentage(80000, 7.5) = %v, expected 6000", result)
	}
}
