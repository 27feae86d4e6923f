// Package ownership projects the total cost of owning a vehicle over an
// N-year holding period, composing depreciation, fuel, insurance,
// maintenance, registration, and financing cost.
package ownership

import (
	"math"

	"github.com/carmarket-ro/costengine/pkg/constants"
	"github.com/carmarket-ro/costengine/pkg/loan"
	"github.com/carmarket-ro/costengine/pkg/market"
	"github.com/carmarket-ro/costengine/pkg/mathutil"
	"github.com/carmarket-ro/costengine/pkg/validation"
	"github.com/carmarket-ro/costengine/pkg/vehicle"
)

// Depreciation rate tiers, selected once from the vehicle age at
// acquisition and held fixed for the whole projection.
const (
	BaseDepreciationRate  = 0.15
	AgedDepreciationRate  = 0.08 // vehicles older than 5 years
	ElderDepreciationRate = 0.05 // vehicles older than 10 years
)

// Insurance estimate factors, also captured at acquisition time.
const (
	InsuranceBaseRate      = 0.03
	InsuranceAgedFactor    = 0.8 // vehicles older than 5 years
	InsuranceElderFactor   = 0.7 // applied on top for vehicles older than 10 years
)

// Maintenance model constants.
const (
	MaintenanceBase            = 2000.0
	MaintenancePerThousandKm   = 50.0
	MaintenanceAgedFactor      = 1.3 // vehicles older than 5 years
	MaintenanceElderFactor     = 1.6 // vehicles older than 10 years
	MaintenanceElectricFactor  = 0.6
	MaintenanceEscalationRate  = 0.05 // of the base figure, per year of ownership
)

// RegistrationFeePerYear is the flat yearly registration cost.
const RegistrationFeePerYear = 500.0

// Assumed financing structure used for the financing category regardless of
// how the buyer actually pays. This is a documented simplification, not a
// user input.
const (
	AssumedLoanToValue       = 0.8
	AssumedAnnualRatePercent = 7.5
)

// Params holds the inputs for one ownership projection.
type Params struct {
	CarPrice              float64
	CarAgeYears           int
	AnnualMileageKm       float64
	FuelType              vehicle.FuelType
	FuelConsumptionPer100 float64
	HoldingPeriodYears    int
	CityName              string
}

// CostBreakdown holds the six cost categories of a projection, either for a
// single year or aggregated over the holding period.
type CostBreakdown struct {
	Depreciation float64
	Fuel         float64
	Insurance    float64
	Maintenance  float64
	Registration float64
	Financing    float64
}

// Sum returns the total across all six categories.
func (b CostBreakdown) Sum() float64 {
	return b.Depreciation + b.Fuel + b.Insurance + b.Maintenance + b.Registration + b.Financing
}

// YearCost is the cost breakdown for one simulated year of ownership.
type YearCost struct {
	Year  int // 1-based year of ownership
	Costs CostBreakdown
	Total float64
}

// Result holds the computed ownership projection.
type Result struct {
	TotalCost          float64
	AverageMonthlyCost float64
	Aggregate          CostBreakdown
	Yearly             []YearCost
}

// Validate checks the projection parameters against the documented
// constraints, enumerating every violation.
func Validate(params Params) error {
	var errs validation.Errors
	errs.RequirePositive("carPrice", params.CarPrice)
	if params.CarAgeYears < 0 {
		errs.Add("carAgeYears", "must not be negative, got %d", params.CarAgeYears)
	}
	errs.RequireNonNegative("annualMileageKm", params.AnnualMileageKm)
	if !params.FuelType.Valid() {
		errs.Add("fuelType", "unknown fuel type %q", string(params.FuelType))
	}
	errs.RequireNonNegative("fuelConsumptionPer100km", params.FuelConsumptionPer100)
	errs.RequireIntRange("holdingPeriodYears", params.HoldingPeriodYears,
		constants.MinHoldingPeriodYears, constants.MaxHoldingPeriodYears)
	return errs.Err()
}

// DepreciationRate selects the annual depreciation rate tier for a vehicle
// of the given age at acquisition.
func DepreciationRate(carAgeYears int) float64 {
	switch {
	case carAgeYears > 10:
		return ElderDepreciationRate
	case carAgeYears > 5:
		return AgedDepreciationRate
	default:
		return BaseDepreciationRate
	}
}

// annualInsuranceEstimate computes the flat yearly insurance figure from the
// acquisition-time age. It intentionally does not reuse the full premium
// estimator; the projection works from the simplified value-based estimate.
func annualInsuranceEstimate(carPrice float64, carAgeYears int) float64 {
	estimate := carPrice * InsuranceBaseRate
	if carAgeYears > 5 {
		estimate *= InsuranceAgedFactor
	}
	if carAgeYears > 10 {
		estimate *= InsuranceElderFactor
	}
	return estimate
}

// annualMaintenanceBase computes the first-year maintenance figure before
// per-year escalation.
func annualMaintenanceBase(params Params) float64 {
	base := MaintenanceBase + (params.AnnualMileageKm/1000.0)*MaintenancePerThousandKm
	switch {
	case params.CarAgeYears > 10:
		base *= MaintenanceElderFactor
	case params.CarAgeYears > 5:
		base *= MaintenanceAgedFactor
	}
	if params.FuelType == vehicle.FuelElectric {
		base *= MaintenanceElectricFactor
	}
	return base
}

// Compute produces the ownership projection for the given parameters.
//
// Every per-year figure is a pure function of the year index and the
// parameters captured at acquisition; no category reads another category's
// prior-year value, so the per-year records could be computed in any order
// and reassembled by index.
func Compute(params Params, tables market.Tables) Result {
	years := params.HoldingPeriodYears

	// Tiers and flat figures captured once at acquisition time.
	depreciationRate := DepreciationRate(params.CarAgeYears)
	annualFuel := (params.AnnualMileageKm / 100.0) * params.FuelConsumptionPer100 * tables.FuelPrice(params.FuelType)
	annualInsurance := annualInsuranceEstimate(params.CarPrice, params.CarAgeYears)
	annualMaintenance := annualMaintenanceBase(params)

	// Assumed financing: 80% loan-to-value over the holding period.
	financing := loan.Compute(loan.Params{
		PrincipalPrice:            params.CarPrice,
		DownPayment:               params.CarPrice * (1 - AssumedLoanToValue),
		TermMonths:                years * constants.MonthsPerYear,
		AnnualInterestRatePercent: AssumedAnnualRatePercent,
	})
	financingPerYear := financing.TotalInterest / float64(years)

	yearly := make([]YearCost, years)
	var aggregate CostBreakdown
	for i := 0; i < years; i++ {
		costs := CostBreakdown{
			// Year i sheds a fixed share of the value remaining after i years.
			Depreciation: params.CarPrice * depreciationRate * math.Pow(1-depreciationRate, float64(i)),
			Fuel:         annualFuel,
			Insurance:    annualInsurance,
			Maintenance:  annualMaintenance * (1 + MaintenanceEscalationRate*float64(i)),
			Registration: RegistrationFeePerYear,
			Financing:    financingPerYear,
		}
		costs = roundBreakdown(costs)
		yearly[i] = YearCost{
			Year:  i + 1,
			Costs: costs,
			Total: mathutil.Round(costs.Sum()),
		}

		aggregate.Fuel += costs.Fuel
		aggregate.Insurance += costs.Insurance
		aggregate.Maintenance += costs.Maintenance
		aggregate.Registration += costs.Registration
		aggregate.Financing += costs.Financing
	}

	// Closed-form aggregate depreciation; the geometric series identity
	// guarantees it matches the per-year sum within rounding.
	aggregate.Depreciation = params.CarPrice * (1 - math.Pow(1-depreciationRate, float64(years)))
	aggregate = roundBreakdown(aggregate)

	totalCost := mathutil.Round(aggregate.Sum())
	return Result{
		TotalCost:          totalCost,
		AverageMonthlyCost: mathutil.Round(totalCost / float64(years*constants.MonthsPerYear)),
		Aggregate:          aggregate,
		Yearly:             yearly,
	}
}

func roundBreakdown(b CostBreakdown) CostBreakdown {
	return CostBreakdown{
		Depreciation: mathutil.Round(b.Depreciation),
		Fuel:         mathutil.Round(b.Fuel),
		Insurance:    mathutil.Round(b.Insurance),
		Maintenance:  mathutil.Round(b.Maintenance),
		Registration: mathutil.Round(b.Registration),
		Financing:    mathutil.Round(b.Financing),
	}
}
