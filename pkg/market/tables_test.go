package market

import (
	"math"
	"testing"

	"github.com/carmarket-ro/costengine/pkg/vehicle"
)

func TestCityMultiplier(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name     string
		city     string
		expected float64
	}{
		{"Bucharest", "Bucharest", 1.3},
		{"Cluj-Napoca", "Cluj-Napoca", 1.1},
		{"Timisoara", "Timisoara", 1.1},
		{"Iasi", "Iasi", 1.0},
		{"Constanta", "Constanta", 1.0},
		{"Unknown city falls back to default", "Oradea", 1.0},
		{"Case insensitive lookup", "BUCHAREST", 1.3},
		{"Whitespace trimmed", "  cluj-napoca ", 1.1},
		{"Empty city", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tables.CityMultiplier(tt.city); got != tt.expected {
				t.Errorf("CityMultiplier(%q) = %v, expected %v", tt.city, got, tt.expected)
			}
		})
	}
}

func TestFuelPrice(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		fuel     vehicle.FuelType
		expected float64
	}{
		{vehicle.FuelPetrol, 6.5},
		{vehicle.FuelDiesel, 6.8},
		{vehicle.FuelHybrid, 6.5},
		{vehicle.FuelElectric, 0.7},
		{vehicle.FuelLPG, 3.2},
		{vehicle.FuelCNG, 4.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.fuel), func(t *testing.T) {
			if got := tables.FuelPrice(tt.fuel); got != tt.expected {
				t.Errorf("FuelPrice(%s) = %v, expected %v", tt.fuel, got, tt.expected)
			}
		})
	}
}

func TestTermAllowed(t *testing.T) {
	tables := DefaultTables()

	for _, term := range []int{12, 24, 36, 48, 60, 72, 84} {
		if !tables.TermAllowed(term) {
			t.Errorf("TermAllowed(%d) = false, expected true", term)
		}
	}
	for _, term := range []int{0, 6, 13, 120} {
		if tables.TermAllowed(term) {
			t.Errorf("TermAllowed(%d) = true, expected false", term)
		}
	}
}

func TestDeductibleAllowed(t *testing.T) {
	tables := DefaultTables()

	for _, d := range []float64{500, 1000, 1500, 2000, 3000} {
		if !tables.DeductibleAllowed(d) {
			t.Errorf("DeductibleAllowed(%v) = false, expected true", d)
		}
	}
	if tables.DeductibleAllowed(750) {
		t.Errorf("DeductibleAllowed(750) = true, expected false")
	}
}

func TestCoverageSharesSumToOne(t *testing.T) {
	s := DefaultTables().Shares
	sum := s.Liability + s.Collision + s.TheftFire + s.PersonalInjury
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("coverage shares sum to %v, expected 1.0", sum)
	}
}
