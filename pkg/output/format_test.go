package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carmarket-ro/costengine/pkg/loan"
	"github.com/carmarket-ro/costengine/pkg/market"
	"github.com/carmarket-ro/costengine/pkg/ownership"
	"github.com/carmarket-ro/costengine/pkg/vehicle"
)

func sampleQuote() Quote {
	loanResult := loan.Compute(loan.Params{
		PrincipalPrice:            100000,
		DownPayment:               20000,
		TermMonths:                60,
		AnnualInterestRatePercent: 7.5,
	})
	ownershipResult := ownership.Compute(ownership.Params{
		CarPrice:              60000,
		CarAgeYears:           1,
		AnnualMileageKm:       15000,
		FuelType:              vehicle.FuelDiesel,
		FuelConsumptionPer100: 6.0,
		HoldingPeriodYears:    3,
	}, market.DefaultTables())

	return Quote{
		VehicleName: "2024 Test Sedan",
		Loan:        &loanResult,
		Ownership:   &ownershipResult,
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleQuote())
	got := buf.String()

	for _, expected := range []string{
		"Quote for 2024 Test Sedan",
		"Financing",
		"Monthly payment",
		"Ownership over 3 years",
		"Average monthly",
	} {
		if !strings.Contains(got, expected) {
			t.Errorf("pretty output missing %q:\n%s", expected, got)
		}
	}
}

func TestPrettyFormatSkipsMissingSections(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, Quote{VehicleName: "bare"})
	got := buf.String()

	if strings.Contains(got, "Financing") || strings.Contains(got, "Insurance") {
		t.Errorf("pretty output rendered sections that were not requested:\n%s", got)
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	CsvFormat(&buf, sampleQuote())
	got := buf.String()

	lines := strings.Split(strings.TrimSpace(got), "\n")
	// Header + 3 yearly rows + aggregate row
	if len(lines) != 5 {
		t.Fatalf("got %d CSV lines, expected 5:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], `"year"`) {
		t.Errorf("CSV header = %q, expected to start with \"year\"", lines[0])
	}
	if !strings.HasPrefix(lines[4], `"total"`) {
		t.Errorf("last CSV row = %q, expected the aggregate row", lines[4])
	}
}
