package loan

import (
	"math"
	"testing"

	"github.com/carmarket-ro/costengine/pkg/mathutil"
	"github.com/carmarket-ro/costengine/pkg/validation"
)

func TestComputeStandardScenario(t *testing.T) {
	// price=100000, downPayment=20000, term=60, rate=7.5% =>
	// financed=80000, monthlyRate=0.00625
	params := Params{
		PrincipalPrice:            100000,
		DownPayment:               20000,
		TermMonths:                60,
		AnnualInterestRatePercent: 7.5,
	}

	result := Compute(params)

	if result.FinancedAmount != 80000 {
		t.Errorf("FinancedAmount = %.2f, expected 80000", result.FinancedAmount)
	}
	if result.MonthlyPayment < 1595 || result.MonthlyPayment > 1610 {
		t.Errorf("MonthlyPayment = %.2f, expected range [1595, 1610]", result.MonthlyPayment)
	}
	if result.TotalInterest < 16000 || result.TotalInterest > 16400 {
		t.Errorf("TotalInterest = %.2f, expected range [16000, 16400]", result.TotalInterest)
	}

	// totalAmountPaid = financed portion + down payment + trade-in
	expectedTotal := result.MonthlyPayment*60 + 20000
	if !mathutil.WithinTolerance(result.TotalAmountPaid, expectedTotal, 1.0) {
		t.Errorf("TotalAmountPaid = %.2f, expected about %.2f", result.TotalAmountPaid, expectedTotal)
	}
	if result.TotalAmountPaid < params.PrincipalPrice {
		t.Errorf("TotalAmountPaid = %.2f below principal %.2f with positive rate",
			result.TotalAmountPaid, params.PrincipalPrice)
	}
}

func TestComputeZeroInterest(t *testing.T) {
	params := Params{
		PrincipalPrice:            12000,
		DownPayment:               2000,
		TermMonths:                50,
		AnnualInterestRatePercent: 0,
	}

	result := Compute(params)

	// Straight-line repayment: 10000 / 50 = 200 exactly
	if math.Abs(result.MonthlyPayment-200) > 1e-9 {
		t.Errorf("MonthlyPayment = %v, expected exactly 200", result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Errorf("TotalInterest = %v, expected 0", result.TotalInterest)
	}
}

func TestComputeFullyCovered(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{
			name: "Down payment covers price",
			params: Params{
				PrincipalPrice:            50000,
				DownPayment:               50000,
				TermMonths:                60,
				AnnualInterestRatePercent: 5.0,
			},
		},
		{
			name: "Trade-in exceeds remainder",
			params: Params{
				PrincipalPrice:            50000,
				DownPayment:               10000,
				TradeInValue:              45000,
				TermMonths:                36,
				AnnualInterestRatePercent: 7.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.params)

			if result.MonthlyPayment != 0 {
				t.Errorf("MonthlyPayment = %v, expected 0", result.MonthlyPayment)
			}
			if result.TotalInterest != 0 {
				t.Errorf("TotalInterest = %v, expected 0", result.TotalInterest)
			}
			if result.FinancedAmount != 0 {
				t.Errorf("FinancedAmount = %v, expected 0", result.FinancedAmount)
			}
			if result.TotalAmountPaid != tt.params.PrincipalPrice {
				t.Errorf("TotalAmountPaid = %v, expected principal %v",
					result.TotalAmountPaid, tt.params.PrincipalPrice)
			}
		})
	}
}

func TestTotalInterestMonotonicInRate(t *testing.T) {
	rates := []float64{0.5, 2.0, 5.0, 7.5, 12.0, 18.0}
	previous := -1.0
	for _, rate := range rates {
		result := Compute(Params{
			PrincipalPrice:            80000,
			TermMonths:                60,
			AnnualInterestRatePercent: rate,
		})
		if result.TotalInterest <= previous {
			t.Errorf("TotalInterest at rate %.1f%% = %.2f, expected strictly above %.2f",
				rate, result.TotalInterest, previous)
		}
		previous = result.TotalInterest
	}
}

func TestComputeAlwaysFinite(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"Single month term", Params{PrincipalPrice: 1000, TermMonths: 1, AnnualInterestRatePercent: 10}},
		{"Tiny principal", Params{PrincipalPrice: 0.05, TermMonths: 12}},
		{"Long term high rate", Params{PrincipalPrice: 500000, TermMonths: 84, AnnualInterestRatePercent: 45}},
		{"Zero rate zero down", Params{PrincipalPrice: 30000, TermMonths: 84}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.params)
			for label, value := range map[string]float64{
				"MonthlyPayment":  result.MonthlyPayment,
				"TotalInterest":   result.TotalInterest,
				"TotalAmountPaid": result.TotalAmountPaid,
				"FinancedAmount":  result.FinancedAmount,
			} {
				if !mathutil.IsFinite(value) {
					t.Errorf("%s = %v, expected a finite value", label, value)
				}
			}
		})
	}
}

func TestValidateEnumeratesAllViolations(t *testing.T) {
	err := Validate(Params{
		PrincipalPrice:            -100,
		DownPayment:               -50,
		TermMonths:                0,
		AnnualInterestRatePercent: -1,
		TradeInValue:              -10,
	})
	if err == nil {
		t.Fatal("Validate() = nil, expected an error")
	}

	verrs, ok := err.(*validation.Errors)
	if !ok {
		t.Fatalf("Validate() returned %T, expected *validation.Errors", err)
	}
	if len(verrs.Fields) < 5 {
		t.Errorf("expected at least 5 field errors, got %d: %v", len(verrs.Fields), verrs.Fields)
	}
}

func TestValidateAcceptsDocumentedRanges(t *testing.T) {
	err := Validate(Params{
		PrincipalPrice:            60000,
		DownPayment:               12000,
		TermMonths:                48,
		AnnualInterestRatePercent: 7.5,
		TradeInValue:              5000,
	})
	if err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}
