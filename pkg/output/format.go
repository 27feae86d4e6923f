// Package output provides utilities for formatting and displaying computed
// quotes. Display formatting stays outside the calculators; they return
// plain numeric amounts.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/carmarket-ro/costengine/pkg/insurance"
	"github.com/carmarket-ro/costengine/pkg/loan"
	"github.com/carmarket-ro/costengine/pkg/ownership"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Quote bundles the results computed for one vehicle. Sections left nil
// were not requested.
type Quote struct {
	VehicleName string
	Currency    string
	Loan        *loan.Result
	Insurance   *insurance.Result
	Ownership   *ownership.Result
}

// PrettyFormat writes a human-readable rendering of the quote.
func PrettyFormat(w io.Writer, quote Quote) {
	p := message.NewPrinter(language.English)
	currency := quote.Currency
	if currency == "" {
		currency = "RON"
	}

	fmt.Fprintf(w, "--- Quote for %s ---\n", quote.VehicleName)

	if quote.Loan != nil {
		fmt.Fprintf(w, "Financing\n")
		_, _ = p.Fprintf(w, "  Financed amount   | %.2f %s\n", quote.Loan.FinancedAmount, currency)
		_, _ = p.Fprintf(w, "  Monthly payment   | %.2f %s\n", quote.Loan.MonthlyPayment, currency)
		_, _ = p.Fprintf(w, "  Total interest    | %.2f %s\n", quote.Loan.TotalInterest, currency)
		_, _ = p.Fprintf(w, "  Total amount paid | %.2f %s\n", quote.Loan.TotalAmountPaid, currency)
	}

	if quote.Insurance != nil {
		b := quote.Insurance.CoverageBreakdown
		fmt.Fprintf(w, "Insurance\n")
		_, _ = p.Fprintf(w, "  Annual premium  | %.2f %s\n", quote.Insurance.AnnualPremium, currency)
		_, _ = p.Fprintf(w, "  Monthly premium | %.2f %s\n", quote.Insurance.MonthlyPremium, currency)
		_, _ = p.Fprintf(w, "  Liability %.2f | Collision %.2f | Theft/fire %.2f | Personal injury %.2f\n",
			b.Liability, b.Collision, b.TheftFire, b.PersonalInjury)
	}

	if quote.Ownership != nil {
		fmt.Fprintf(w, "Ownership over %d years\n", len(quote.Ownership.Yearly))
		_, _ = p.Fprintf(w, "  Total cost      | %.2f %s\n", quote.Ownership.TotalCost, currency)
		_, _ = p.Fprintf(w, "  Average monthly | %.2f %s\n", quote.Ownership.AverageMonthlyCost, currency)
		fmt.Fprintf(w, "  Year | Depreciation | Fuel | Insurance | Maintenance | Registration | Financing | Total\n")
		for _, year := range quote.Ownership.Yearly {
			c := year.Costs
			_, _ = p.Fprintf(w, "  %4d | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f\n",
				year.Year, c.Depreciation, c.Fuel, c.Insurance, c.Maintenance, c.Registration, c.Financing, year.Total)
		}
	}
}

// CsvFormat writes the quote's ownership projection in comma-separated
// value format, one row per year plus an aggregate row.
func CsvFormat(w io.Writer, quote Quote) {
	fmt.Fprintf(w, `"year","depreciation","fuel","insurance","maintenance","registration","financing","total"`)
	fmt.Fprintf(w, "\n")

	if quote.Ownership == nil {
		return
	}

	writeRow := func(label string, c ownership.CostBreakdown, total float64) {
		fields := []string{
			fmt.Sprintf(`"%s"`, label),
			fmt.Sprintf(`"%.2f"`, c.Depreciation),
			fmt.Sprintf(`"%.2f"`, c.Fuel),
			fmt.Sprintf(`"%.2f"`, c.Insurance),
			fmt.Sprintf(`"%.2f"`, c.Maintenance),
			fmt.Sprintf(`"%.2f"`, c.Registration),
			fmt.Sprintf(`"%.2f"`, c.Financing),
			fmt.Sprintf(`"%.2f"`, total),
		}
		fmt.Fprintf(w, "%s\n", strings.Join(fields, ","))
	}

	for _, year := range quote.Ownership.Yearly {
		writeRow(fmt.Sprintf("%d", year.Year), year.Costs, year.Total)
	}
	writeRow("total", quote.Ownership.Aggregate, quote.Ownership.TotalCost)
}
