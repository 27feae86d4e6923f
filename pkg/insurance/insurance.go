// Package insurance estimates vehicle insurance premiums from a
// multiplicative risk-factor model.
//
// The premium starts from a flat percentage of the car value and is adjusted
// by an ordered ladder of risk rules. Evaluation order is fixed so results
// are reproducible; each rule is addressable and testable on its own.
package insurance

import (
	"github.com/carmarket-ro/costengine/pkg/constants"
	"github.com/carmarket-ro/costengine/pkg/market"
	"github.com/carmarket-ro/costengine/pkg/mathutil"
	"github.com/carmarket-ro/costengine/pkg/validation"
)

// BasePremiumRate is the share of the car value forming the base premium.
const BasePremiumRate = 0.03

// CoverageTier enumerates the breadth of a policy.
type CoverageTier string

const (
	CoverageBasic         CoverageTier = "basic"
	CoverageComprehensive CoverageTier = "comprehensive"
	CoverageFull          CoverageTier = "full"
)

// coverageTierFactors maps each tier to its premium multiplier.
var coverageTierFactors = map[CoverageTier]float64{
	CoverageBasic:         0.6,
	CoverageComprehensive: 1.0,
	CoverageFull:          1.4,
}

// Params holds the rating inputs for one premium estimate.
type Params struct {
	CarValue        float64
	CarAgeYears     int
	DriverAgeYears  int
	CityName        string
	CoverageTier    CoverageTier
	Deductible      float64
	AnnualMileageKm float64
}

// CoverageBreakdown splits the annual premium across the four coverage
// categories. Each share is rounded independently; the residual against the
// rounded annual premium is not reconciled.
type CoverageBreakdown struct {
	Liability      float64
	Collision      float64
	TheftFire      float64
	PersonalInjury float64
}

// Result holds the computed premium estimate.
type Result struct {
	MonthlyPremium    float64
	AnnualPremium     float64
	CoverageBreakdown CoverageBreakdown
}

// Rule is one step of the adjustment ladder: when Applies holds for the
// params the premium is multiplied by Factor.
type Rule struct {
	Name    string
	Applies func(Params) bool
	Factor  float64
}

// Rules returns the adjustment ladder in evaluation order. Within each
// group the tiers are mutually exclusive; at most one fires per group.
func Rules() []Rule {
	return []Rule{
		{"vehicle age over 10", func(p Params) bool { return p.CarAgeYears > 10 }, 0.8},
		{"vehicle age under 3", func(p Params) bool { return p.CarAgeYears < 3 }, 1.2},
		{"driver under 25", func(p Params) bool { return p.DriverAgeYears < 25 }, 1.5},
		{"driver under 30", func(p Params) bool { return p.DriverAgeYears >= 25 && p.DriverAgeYears < 30 }, 1.2},
		{"driver over 65", func(p Params) bool { return p.DriverAgeYears > 65 }, 1.1},
		{"basic coverage", func(p Params) bool { return p.CoverageTier == CoverageBasic }, 0.6},
		{"full coverage", func(p Params) bool { return p.CoverageTier == CoverageFull }, 1.4},
		{"deductible 2000 or more", func(p Params) bool { return p.Deductible >= 2000 }, 0.85},
		{"deductible 1500 to 2000", func(p Params) bool { return p.Deductible >= 1500 && p.Deductible < 2000 }, 0.9},
		{"deductible 500 or less", func(p Params) bool { return p.Deductible <= 500 }, 1.15},
		{"mileage over 20000", func(p Params) bool { return p.AnnualMileageKm > 20000 }, 1.2},
		{"mileage under 10000", func(p Params) bool { return p.AnnualMileageKm < 10000 }, 0.9},
	}
}

// Validate checks the rating inputs against the documented constraints,
// enumerating every violation. Enumeration membership (coverage tier,
// deductible) is checked against the market tables.
func Validate(params Params, tables market.Tables) error {
	var errs validation.Errors
	errs.RequirePositive("carValue", params.CarValue)
	if params.CarAgeYears < 0 {
		errs.Add("carAgeYears", "must not be negative, got %d", params.CarAgeYears)
	}
	if params.DriverAgeYears < constants.MinDriverAgeYears {
		errs.Add("driverAgeYears", "must be at least %d, got %d", constants.MinDriverAgeYears, params.DriverAgeYears)
	}
	if _, ok := coverageTierFactors[params.CoverageTier]; !ok {
		errs.Add("coverageTier", "unknown coverage tier %q", string(params.CoverageTier))
	}
	if !tables.DeductibleAllowed(params.Deductible) {
		errs.Add("deductible", "must be one of %v, got %v", tables.AllowedDeductibles, params.Deductible)
	}
	errs.RequireNonNegative("annualMileageKm", params.AnnualMileageKm)
	return errs.Err()
}

// Compute produces the premium estimate for the given parameters. The
// adjustment chain runs in the fixed order of Rules, then the location
// multiplier applies last.
func Compute(params Params, tables market.Tables) Result {
	premium := params.CarValue * BasePremiumRate

	for _, rule := range Rules() {
		if rule.Applies(params) {
			premium *= rule.Factor
		}
	}

	premium *= tables.CityMultiplier(params.CityName)

	annual := mathutil.Round(premium)
	return Result{
		AnnualPremium:  annual,
		MonthlyPremium: mathutil.Round(annual / constants.MonthsPerYear),
		CoverageBreakdown: CoverageBreakdown{
			Liability:      mathutil.Round(annual * tables.Shares.Liability),
			Collision:      mathutil.Round(annual * tables.Shares.Collision),
			TheftFire:      mathutil.Round(annual * tables.Shares.TheftFire),
			PersonalInjury: mathutil.Round(annual * tables.Shares.PersonalInjury),
		},
	}
}
