// Package engine exposes the three calculator entry points behind a single
// facade that validates inputs before any formula runs.
package engine

import (
	"sync"

	"github.com/carmarket-ro/costengine/pkg/insurance"
	"github.com/carmarket-ro/costengine/pkg/loan"
	"github.com/carmarket-ro/costengine/pkg/market"
	"github.com/carmarket-ro/costengine/pkg/ownership"
	"go.uber.org/zap"
)

// Engine runs the calculators against one set of market tables. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	tables market.Tables
	logger *zap.Logger
}

// New creates an Engine over the given market tables.
func New(tables market.Tables, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{tables: tables, logger: logger}
}

// Tables returns the market tables the engine was built with.
func (e *Engine) Tables() market.Tables {
	return e.tables
}

// ComputeLoan validates the loan parameters and computes the financing
// quote. Terms outside the offered set are accepted but logged; the
// amortization formula itself handles any positive term.
func (e *Engine) ComputeLoan(params loan.Params) (loan.Result, error) {
	if err := loan.Validate(params); err != nil {
		return loan.Result{}, err
	}

	if !e.tables.TermAllowed(params.TermMonths) {
		e.logger.Warn("loan term is not an offered term",
			zap.String("op", "engine.ComputeLoan"),
			zap.Int("termMonths", params.TermMonths),
		)
	}

	result := loan.Compute(params)
	e.logger.Debug("computed loan quote",
		zap.String("op", "engine.ComputeLoan"),
		zap.Float64("financedAmount", result.FinancedAmount),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
	)
	return result, nil
}

// ComputeInsurance validates the rating parameters and computes the premium
// estimate.
func (e *Engine) ComputeInsurance(params insurance.Params) (insurance.Result, error) {
	if err := insurance.Validate(params, e.tables); err != nil {
		return insurance.Result{}, err
	}

	result := insurance.Compute(params, e.tables)
	e.logger.Debug("computed insurance estimate",
		zap.String("op", "engine.ComputeInsurance"),
		zap.Float64("annualPremium", result.AnnualPremium),
	)
	return result, nil
}

// ComputeOwnershipCost validates the projection parameters and computes the
// N-year ownership cost projection.
func (e *Engine) ComputeOwnershipCost(params ownership.Params) (ownership.Result, error) {
	if err := ownership.Validate(params); err != nil {
		return ownership.Result{}, err
	}

	result := ownership.Compute(params, e.tables)
	e.logger.Debug("computed ownership projection",
		zap.String("op", "engine.ComputeOwnershipCost"),
		zap.Int("holdingPeriodYears", params.HoldingPeriodYears),
		zap.Float64("totalCost", result.TotalCost),
	)
	return result, nil
}

// OwnershipQuote pairs one batch entry's result with its validation outcome.
type OwnershipQuote struct {
	Result ownership.Result
	Err    error
}

// BatchOwnershipCost computes projections for many vehicles concurrently.
// The calculators are pure, so requests fan out with no locking; results
// are positionally aligned with the input slice.
func (e *Engine) BatchOwnershipCost(paramSets []ownership.Params) []OwnershipQuote {
	quotes := make([]OwnershipQuote, len(paramSets))

	var wg sync.WaitGroup
	for i := range paramSets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := e.ComputeOwnershipCost(paramSets[i])
			quotes[i] = OwnershipQuote{Result: result, Err: err}
		}(i)
	}
	wg.Wait()

	return quotes
}
