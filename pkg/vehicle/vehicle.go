// Package vehicle defines the vehicle domain types shared by the calculators.
package vehicle

import (
	"fmt"
	"strings"

	"github.com/carmarket-ro/costengine/pkg/validation"
)

// FuelType enumerates the supported vehicle fuel types.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelLPG      FuelType = "lpg"
	FuelCNG      FuelType = "cng"
)

// FuelTypes lists every supported fuel type in a stable order.
var FuelTypes = []FuelType{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG, FuelCNG}

// ParseFuelType converts a raw string into a FuelType, case-insensitively.
func ParseFuelType(raw string) (FuelType, error) {
	candidate := FuelType(strings.ToLower(strings.TrimSpace(raw)))
	for _, ft := range FuelTypes {
		if candidate == ft {
			return ft, nil
		}
	}
	return "", fmt.Errorf("unknown fuel type %q", raw)
}

// Valid reports whether the fuel type is one of the supported values.
func (ft FuelType) Valid() bool {
	_, err := ParseFuelType(string(ft))
	return err == nil
}

// Profile describes a vehicle as supplied by the catalog system. It is a
// read-only input; calculators never modify it.
type Profile struct {
	Price                   float64
	ManufactureYear         int
	FuelType                FuelType
	CityName                string
	CombinedFuelConsumption float64 // liters or kWh-equivalent per 100 km
}

// Validate checks the profile invariants the catalog system is expected to
// uphold, enumerating every violation.
func (p Profile) Validate(currentYear int) error {
	var errs validation.Errors
	errs.RequirePositive("price", p.Price)
	if p.ManufactureYear > currentYear {
		errs.Add("manufactureYear", "must not be after %d, got %d", currentYear, p.ManufactureYear)
	}
	if !p.FuelType.Valid() {
		errs.Add("fuelType", "unknown fuel type %q", string(p.FuelType))
	}
	errs.RequireNonNegative("combinedFuelConsumption", p.CombinedFuelConsumption)
	return errs.Err()
}

// AgeYears returns the vehicle age relative to the given calendar year,
// clamped at zero for current-year vehicles.
func (p Profile) AgeYears(currentYear int) int {
	age := currentYear - p.ManufactureYear
	if age < 0 {
		return 0
	}
	return age
}
