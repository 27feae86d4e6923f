package validation

import (
	"math"
	"strings"
	"testing"
)

func TestErrorsCollectsEveryViolation(t *testing.T) {
	var errs Errors
	errs.RequirePositive("price", -1)
	errs.RequireNonNegative("downPayment", -500)
	errs.RequireIntRange("holdingPeriodYears", 0, 1, 10)

	if len(errs.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(errs.Fields), errs.Fields)
	}

	fields := make(map[string]bool)
	for _, f := range errs.Fields {
		fields[f.Field] = true
	}
	for _, expected := range []string{"price", "downPayment", "holdingPeriodYears"} {
		if !fields[expected] {
			t.Errorf("expected a violation for field %q", expected)
		}
	}
}

func TestErrReturnsNilWhenValid(t *testing.T) {
	var errs Errors
	errs.RequirePositive("price", 100)
	errs.RequireNonNegative("downPayment", 0)

	if err := errs.Err(); err != nil {
		t.Errorf("Err() = %v, expected nil for valid input", err)
	}
}

func TestErrReturnsErrorWhenInvalid(t *testing.T) {
	var errs Errors
	errs.Add("fuelType", "unknown fuel type %q", "steam")

	err := errs.Err()
	if err == nil {
		t.Fatal("Err() = nil, expected an error")
	}
	if !strings.Contains(err.Error(), "fuelType") {
		t.Errorf("error message %q does not name the violated field", err.Error())
	}
}

func TestRequireFiniteRejectsNaNAndInf(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"NaN", math.NaN()},
		{"Positive infinity", math.Inf(1)},
		{"Negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs Errors
			errs.RequirePositive("value", tt.value)
			if !errs.HasErrors() {
				t.Errorf("expected a violation for %s", tt.name)
			}
		})
	}
}

func TestRequireAtMost(t *testing.T) {
	var errs Errors
	errs.RequireAtMost("downPayment", 120000, 100000, "principalPrice")
	if !errs.HasErrors() {
		t.Fatal("expected a violation when value exceeds limit")
	}
	if !strings.Contains(errs.Fields[0].Message, "principalPrice") {
		t.Errorf("message %q should reference the limiting field", errs.Fields[0].Message)
	}
}

func TestNilErrorsIsValid(t *testing.T) {
	var errs *Errors
	if errs.HasErrors() {
		t.Error("nil *Errors should report no violations")
	}
}
