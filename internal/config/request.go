package config

import (
	"fmt"
	"time"

	"github.com/carmarket-ro/costengine/pkg/insurance"
	"github.com/carmarket-ro/costengine/pkg/loan"
	"github.com/carmarket-ro/costengine/pkg/ownership"
	"github.com/carmarket-ro/costengine/pkg/vehicle"
	"github.com/spf13/viper"
)

// QuoteRequest is the quote-request document consumed by the CLI: one
// vehicle plus the calculator sections to run. Sections left out are
// skipped.
type QuoteRequest struct {
	Vehicle   VehicleSection    `yaml:"vehicle"`
	Loan      *LoanSection      `yaml:"loan,omitempty"`
	Insurance *InsuranceSection `yaml:"insurance,omitempty"`
	Ownership *OwnershipSection `yaml:"ownership,omitempty"`
}

// VehicleSection mirrors the catalog system's vehicle record.
type VehicleSection struct {
	Name                    string  `yaml:"name,omitempty"`
	Price                   float64 `yaml:"price"`
	ManufactureYear         int     `yaml:"manufactureYear"`
	FuelType                string  `yaml:"fuelType"`
	CityName                string  `yaml:"cityName,omitempty"`
	CombinedFuelConsumption float64 `yaml:"combinedFuelConsumption,omitempty"`
}

// LoanSection holds the user-adjustable financing parameters.
type LoanSection struct {
	DownPayment               float64 `yaml:"downPayment"`
	TermMonths                int     `yaml:"termMonths"`
	AnnualInterestRatePercent float64 `yaml:"annualInterestRatePercent"`
	TradeInValue              float64 `yaml:"tradeInValue,omitempty"`
}

// InsuranceSection holds the user-adjustable rating parameters.
type InsuranceSection struct {
	DriverAgeYears  int     `yaml:"driverAgeYears"`
	CoverageTier    string  `yaml:"coverageTier"`
	Deductible      float64 `yaml:"deductible"`
	AnnualMileageKm float64 `yaml:"annualMileageKm"`
}

// OwnershipSection holds the user-adjustable projection parameters.
type OwnershipSection struct {
	HoldingPeriodYears int     `yaml:"holdingPeriodYears"`
	AnnualMileageKm    float64 `yaml:"annualMileageKm"`
}

// LoadQuoteRequest loads a YAML quote-request document.
func LoadQuoteRequest(path string) (*QuoteRequest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading request file, %s", err)
	}

	var request QuoteRequest
	if err := v.Unmarshal(&request); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &request, nil
}

// Profile converts the vehicle section into the domain profile.
func (r *QuoteRequest) Profile() vehicle.Profile {
	ft, _ := vehicle.ParseFuelType(r.Vehicle.FuelType)
	return vehicle.Profile{
		Price:                   r.Vehicle.Price,
		ManufactureYear:         r.Vehicle.ManufactureYear,
		FuelType:                ft,
		CityName:                r.Vehicle.CityName,
		CombinedFuelConsumption: r.Vehicle.CombinedFuelConsumption,
	}
}

// VehicleAge returns the vehicle's age as of now.
func (r *QuoteRequest) VehicleAge() int {
	return r.Profile().AgeYears(time.Now().Year())
}

// LoanParams builds the loan calculator parameters, taking the principal
// from the vehicle price.
func (r *QuoteRequest) LoanParams() loan.Params {
	return loan.Params{
		PrincipalPrice:            r.Vehicle.Price,
		DownPayment:               r.Loan.DownPayment,
		TermMonths:                r.Loan.TermMonths,
		AnnualInterestRatePercent: r.Loan.AnnualInterestRatePercent,
		TradeInValue:              r.Loan.TradeInValue,
	}
}

// InsuranceParams builds the insurance calculator parameters, taking the
// car value, age, and city from the vehicle record.
func (r *QuoteRequest) InsuranceParams() insurance.Params {
	return insurance.Params{
		CarValue:        r.Vehicle.Price,
		CarAgeYears:     r.VehicleAge(),
		DriverAgeYears:  r.Insurance.DriverAgeYears,
		CityName:        r.Vehicle.CityName,
		CoverageTier:    insurance.CoverageTier(r.Insurance.CoverageTier),
		Deductible:      r.Insurance.Deductible,
		AnnualMileageKm: r.Insurance.AnnualMileageKm,
	}
}

// OwnershipParams builds the projection parameters from the vehicle record
// and the ownership section.
func (r *QuoteRequest) OwnershipParams() ownership.Params {
	profile := r.Profile()
	return ownership.Params{
		CarPrice:              profile.Price,
		CarAgeYears:           r.VehicleAge(),
		AnnualMileageKm:       r.Ownership.AnnualMileageKm,
		FuelType:              profile.FuelType,
		FuelConsumptionPer100: profile.CombinedFuelConsumption,
		HoldingPeriodYears:    r.Ownership.HoldingPeriodYears,
		CityName:              profile.CityName,
	}
}
