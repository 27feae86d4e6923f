// Package market holds the fixed per-market lookup tables the calculators
// depend on. Tables are immutable value data injected into the calculators,
// so a deployment can swap them per market without touching the formulas.
package market

import (
	"strings"

	"github.com/carmarket-ro/costengine/pkg/vehicle"
)

// CoverageShares holds the fixed split of an annual premium across the four
// coverage categories. The shares sum to 1.
type CoverageShares struct {
	Liability      float64
	Collision      float64
	TheftFire      float64
	PersonalInjury float64
}

// Tables bundles every market-specific lookup used by the calculators.
type Tables struct {
	// CityMultipliers maps a city name to its insurance location-risk
	// multiplier. Unknown cities fall back to DefaultCityMultiplier.
	CityMultipliers map[string]float64

	// DefaultCityMultiplier applies when a city is not in CityMultipliers.
	DefaultCityMultiplier float64

	// FuelPrices maps a fuel type to its price per unit (currency per liter,
	// or per kWh-equivalent for electric).
	FuelPrices map[vehicle.FuelType]float64

	// AllowedTermMonths lists the loan terms offered by the marketplace.
	// Advisory: the amortization formula accepts any positive term.
	AllowedTermMonths []int

	// AllowedDeductibles lists the deductible values a policy may carry.
	AllowedDeductibles []float64

	// Shares is the fixed coverage-category split of the annual premium.
	Shares CoverageShares
}

// DefaultTables returns the built-in Romanian market tables.
func DefaultTables() Tables {
	return Tables{
		CityMultipliers: map[string]float64{
			"bucharest":   1.3,
			"cluj-napoca": 1.1,
			"timisoara":   1.1,
			"iasi":        1.0,
			"constanta":   1.0,
		},
		DefaultCityMultiplier: 1.0,
		FuelPrices: map[vehicle.FuelType]float64{
			vehicle.FuelPetrol:   6.5,
			vehicle.FuelDiesel:   6.8,
			vehicle.FuelHybrid:   6.5,
			vehicle.FuelElectric: 0.7,
			vehicle.FuelLPG:      3.2,
			vehicle.FuelCNG:      4.5,
		},
		AllowedTermMonths:  []int{12, 24, 36, 48, 60, 72, 84},
		AllowedDeductibles: []float64{500, 1000, 1500, 2000, 3000},
		Shares: CoverageShares{
			Liability:      0.40,
			Collision:      0.30,
			TheftFire:      0.20,
			PersonalInjury: 0.10,
		},
	}
}

// CityMultiplier looks up the location-risk multiplier for a city,
// case-insensitively, falling back to the default for unknown cities.
func (t Tables) CityMultiplier(city string) float64 {
	if m, ok := t.CityMultipliers[strings.ToLower(strings.TrimSpace(city))]; ok {
		return m
	}
	return t.DefaultCityMultiplier
}

// FuelPrice returns the per-unit price for a fuel type. Unknown fuel types
// return 0; validation rejects them before any calculator runs.
func (t Tables) FuelPrice(ft vehicle.FuelType) float64 {
	return t.FuelPrices[ft]
}

// TermAllowed reports whether a loan term is one of the offered terms.
func (t Tables) TermAllowed(months int) bool {
	for _, m := range t.AllowedTermMonths {
		if m == months {
			return true
		}
	}
	return false
}

// DeductibleAllowed reports whether a deductible is one of the offered values.
func (t Tables) DeductibleAllowed(deductible float64) bool {
	for _, d := range t.AllowedDeductibles {
		if d == deductible {
			return true
		}
	}
	return false
}
