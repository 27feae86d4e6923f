// Package loan computes fixed-rate amortizing financing for a vehicle
// purchase.
package loan

import (
	"math"

	"github.com/carmarket-ro/costengine/pkg/constants"
	"github.com/carmarket-ro/costengine/pkg/mathutil"
	"github.com/carmarket-ro/costengine/pkg/validation"
)

// Params holds the financing parameters for one loan quote.
type Params struct {
	PrincipalPrice            float64
	DownPayment               float64
	TermMonths                int
	AnnualInterestRatePercent float64
	TradeInValue              float64
}

// Result holds the computed loan figures. Amounts are rounded to cents.
type Result struct {
	MonthlyPayment  float64
	TotalInterest   float64
	TotalAmountPaid float64
	FinancedAmount  float64
}

// Validate checks the loan parameters against the documented constraints,
// enumerating every violation.
func Validate(params Params) error {
	var errs validation.Errors
	errs.RequirePositive("principalPrice", params.PrincipalPrice)
	errs.RequireNonNegative("downPayment", params.DownPayment)
	errs.RequireAtMost("downPayment", params.DownPayment, params.PrincipalPrice, "principalPrice")
	if params.TermMonths <= 0 {
		errs.Add("termMonths", "must be a positive number of months, got %d", params.TermMonths)
	}
	errs.RequireNonNegative("annualInterestRatePercent", params.AnnualInterestRatePercent)
	errs.RequireNonNegative("tradeInValue", params.TradeInValue)
	return errs.Err()
}

// FinancedAmount derives the amount to finance after down payment and
// trade-in credit, clamped at zero.
func FinancedAmount(params Params) float64 {
	return mathutil.Max(0, params.PrincipalPrice-params.DownPayment-params.TradeInValue)
}

// MonthlyPayment calculates the monthly payment for a financed amount using
// the standard amortization formula. A zero rate falls back to straight-line
// repayment to avoid dividing by zero in the discount factor.
func MonthlyPayment(financedAmount, annualInterestRatePercent float64, termMonths int) float64 {
	if annualInterestRatePercent == 0 {
		return financedAmount / float64(termMonths)
	}

	periodicRate := annualInterestRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return financedAmount * periodicRate / discountFactor
}

// Compute produces the loan quote for the given parameters. A financed
// amount of zero (full cash purchase or over-covered trade-in) is a valid
// terminal case, not an error.
func Compute(params Params) Result {
	financed := FinancedAmount(params)
	if mathutil.IsZero(financed) {
		return Result{
			MonthlyPayment:  0,
			TotalInterest:   0,
			TotalAmountPaid: mathutil.Round(params.PrincipalPrice),
			FinancedAmount:  0,
		}
	}

	monthlyPayment := MonthlyPayment(financed, params.AnnualInterestRatePercent, params.TermMonths)
	totalFinancedPaid := monthlyPayment * float64(params.TermMonths)
	totalInterest := totalFinancedPaid - financed

	return Result{
		MonthlyPayment:  mathutil.Round(monthlyPayment),
		TotalInterest:   mathutil.Round(totalInterest),
		TotalAmountPaid: mathutil.Round(totalFinancedPaid + params.DownPayment + params.TradeInValue),
		FinancedAmount:  mathutil.Round(financed),
	}
}
