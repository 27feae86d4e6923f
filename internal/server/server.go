// Package server exposes the calculation engine as a JSON-over-HTTP API for
// the marketplace presentation layer.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carmarket-ro/costengine/internal/config"
	"github.com/carmarket-ro/costengine/internal/metrics"
	"github.com/carmarket-ro/costengine/internal/tracing"
	"github.com/carmarket-ro/costengine/pkg/constants"
	"github.com/carmarket-ro/costengine/pkg/engine"
	"github.com/carmarket-ro/costengine/pkg/insurance"
	"github.com/carmarket-ro/costengine/pkg/loan"
	"github.com/carmarket-ro/costengine/pkg/ownership"
	"github.com/carmarket-ro/costengine/pkg/validation"
	"github.com/carmarket-ro/costengine/pkg/vehicle"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger       *zap.Logger
	engine       *engine.Engine
	maxBodyBytes int64
	version      string
}

// NewHandler constructs the HTTP handler that serves the quote API.
func NewHandler(logger *zap.Logger, eng *engine.Engine, maxBodyBytes int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = constants.DefaultMaxBodyBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, engine: eng, maxBodyBytes: maxBodyBytes, version: trimmedVersion}

	mux := http.NewServeMux()

	// Calculator endpoints
	mux.HandleFunc("/api/loan", h.handleLoan)
	mux.HandleFunc("/api/insurance", h.handleInsurance)
	mux.HandleFunc("/api/ownership", h.handleOwnership)

	// Combined quote endpoint (JSON or YAML quote-request document)
	mux.HandleFunc("/api/quote", h.handleQuote)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type loanRequest struct {
	PrincipalPrice            float64 `json:"principalPrice"`
	DownPayment               float64 `json:"downPayment"`
	TermMonths                int     `json:"termMonths"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent"`
	TradeInValue              float64 `json:"tradeInValue"`
}

type loanResponse struct {
	MonthlyPayment  float64 `json:"monthlyPayment"`
	TotalInterest   float64 `json:"totalInterest"`
	TotalAmountPaid float64 `json:"totalAmountPaid"`
	FinancedAmount  float64 `json:"financedAmount"`
}

type insuranceRequest struct {
	CarValue        float64 `json:"carValue"`
	CarAgeYears     int     `json:"carAgeYears"`
	DriverAgeYears  int     `json:"driverAgeYears"`
	CityName        string  `json:"cityName"`
	CoverageTier    string  `json:"coverageTier"`
	Deductible      float64 `json:"deductible"`
	AnnualMileageKm float64 `json:"annualMileageKm"`
}

type insuranceResponse struct {
	MonthlyPremium    float64           `json:"monthlyPremium"`
	AnnualPremium     float64           `json:"annualPremium"`
	CoverageBreakdown coverageBreakdown `json:"coverageBreakdown"`
}

type coverageBreakdown struct {
	Liability      float64 `json:"liability"`
	Collision      float64 `json:"collision"`
	TheftFire      float64 `json:"theftFire"`
	PersonalInjury float64 `json:"personalInjury"`
}

type ownershipRequest struct {
	CarPrice              float64 `json:"carPrice"`
	CarAgeYears           int     `json:"carAgeYears"`
	AnnualMileageKm       float64 `json:"annualMileageKm"`
	FuelType              string  `json:"fuelType"`
	FuelConsumptionPer100 float64 `json:"fuelConsumptionPer100km"`
	HoldingPeriodYears    int     `json:"holdingPeriodYears"`
	CityName              string  `json:"cityName"`
}

type costBreakdown struct {
	Depreciation float64 `json:"depreciation"`
	Fuel         float64 `json:"fuel"`
	Insurance    float64 `json:"insurance"`
	Maintenance  float64 `json:"maintenance"`
	Registration float64 `json:"registration"`
	Financing    float64 `json:"financing"`
}

type yearCost struct {
	Year  int           `json:"year"`
	Costs costBreakdown `json:"costs"`
	Total float64       `json:"total"`
}

type ownershipResponse struct {
	TotalCost          float64       `json:"totalCost"`
	AverageMonthlyCost float64       `json:"averageMonthlyCost"`
	Aggregate          costBreakdown `json:"aggregateBreakdown"`
	Yearly             []yearCost    `json:"yearlyBreakdown"`
}

type quoteResponse struct {
	Vehicle   string             `json:"vehicle,omitempty"`
	Loan      *loanResponse      `json:"loan,omitempty"`
	Insurance *insuranceResponse `json:"insurance,omitempty"`
	Ownership *ownershipResponse `json:"ownership,omitempty"`
	Duration  string             `json:"duration"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func (h *handler) handleLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, ok := h.computeLoan(w, r, loan.Params{
		PrincipalPrice:            req.PrincipalPrice,
		DownPayment:               req.DownPayment,
		TermMonths:                req.TermMonths,
		AnnualInterestRatePercent: req.AnnualInterestRatePercent,
		TradeInValue:              req.TradeInValue,
	})
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, toLoanResponse(result))
}

func (h *handler) handleInsurance(w http.ResponseWriter, r *http.Request) {
	var req insuranceRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, ok := h.computeInsurance(w, r, insurance.Params{
		CarValue:        req.CarValue,
		CarAgeYears:     req.CarAgeYears,
		DriverAgeYears:  req.DriverAgeYears,
		CityName:        req.CityName,
		CoverageTier:    insurance.CoverageTier(req.CoverageTier),
		Deductible:      req.Deductible,
		AnnualMileageKm: req.AnnualMileageKm,
	})
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, toInsuranceResponse(result))
}

func (h *handler) handleOwnership(w http.ResponseWriter, r *http.Request) {
	var req ownershipRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, ok := h.computeOwnership(w, r, ownershipParamsFromRequest(req))
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, toOwnershipResponse(result))
}

// handleQuote computes every section of one quote-request document. The
// body may be JSON or, matching the CLI request file, YAML.
func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), nil)
		return
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var request config.QuoteRequest
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "yaml") || strings.Contains(contentType, "yml") {
		if err := yaml.Unmarshal(body, &request); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse YAML request: %v", err), nil)
			return
		}
	} else {
		if err := json.Unmarshal(body, &request); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse JSON request: %v", err), nil)
			return
		}
	}

	if err := request.Profile().Validate(time.Now().Year()); err != nil {
		h.rejectComputation(w, "quote", err)
		return
	}

	start := time.Now()
	response := quoteResponse{Vehicle: request.Vehicle.Name}

	if request.Loan != nil {
		result, ok := h.computeLoan(w, r, request.LoanParams())
		if !ok {
			return
		}
		lr := toLoanResponse(result)
		response.Loan = &lr
	}
	if request.Insurance != nil {
		result, ok := h.computeInsurance(w, r, request.InsuranceParams())
		if !ok {
			return
		}
		ir := toInsuranceResponse(result)
		response.Insurance = &ir
	}
	if request.Ownership != nil {
		result, ok := h.computeOwnership(w, r, request.OwnershipParams())
		if !ok {
			return
		}
		or := toOwnershipResponse(result)
		response.Ownership = &or
	}

	response.Duration = time.Since(start).String()
	h.respondJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), nil)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// computeLoan runs the loan calculator with instrumentation, writing the
// error response itself when the computation is rejected.
func (h *handler) computeLoan(w http.ResponseWriter, r *http.Request, params loan.Params) (loan.Result, bool) {
	_, span := tracing.Tracer.Start(r.Context(), "engine.ComputeLoan")
	defer span.End()

	timer := time.Now()
	result, err := h.engine.ComputeLoan(params)
	metrics.CalculationDuration.WithLabelValues("loan").Observe(time.Since(timer).Seconds())

	if err != nil {
		h.rejectComputation(w, "loan", err)
		return loan.Result{}, false
	}
	metrics.Calculations.WithLabelValues("loan", "ok").Inc()
	return result, true
}

func (h *handler) computeInsurance(w http.ResponseWriter, r *http.Request, params insurance.Params) (insurance.Result, bool) {
	_, span := tracing.Tracer.Start(r.Context(), "engine.ComputeInsurance")
	defer span.End()

	timer := time.Now()
	result, err := h.engine.ComputeInsurance(params)
	metrics.CalculationDuration.WithLabelValues("insurance").Observe(time.Since(timer).Seconds())

	if err != nil {
		h.rejectComputation(w, "insurance", err)
		return insurance.Result{}, false
	}
	metrics.Calculations.WithLabelValues("insurance", "ok").Inc()
	return result, true
}

func (h *handler) computeOwnership(w http.ResponseWriter, r *http.Request, params ownership.Params) (ownership.Result, bool) {
	_, span := tracing.Tracer.Start(r.Context(), "engine.ComputeOwnershipCost")
	defer span.End()

	timer := time.Now()
	result, err := h.engine.ComputeOwnershipCost(params)
	metrics.CalculationDuration.WithLabelValues("ownership").Observe(time.Since(timer).Seconds())

	if err != nil {
		h.rejectComputation(w, "ownership", err)
		return ownership.Result{}, false
	}
	metrics.Calculations.WithLabelValues("ownership", "ok").Inc()
	return result, true
}

// rejectComputation maps a validation failure to 422 with the per-field
// error list; anything else is a plain 400.
func (h *handler) rejectComputation(w http.ResponseWriter, operation string, err error) {
	metrics.Calculations.WithLabelValues(operation, "rejected").Inc()

	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		metrics.ValidationFailures.WithLabelValues(operation).Inc()
		h.logger.Debug("rejected parameter set",
			zap.String("op", "server.rejectComputation"),
			zap.String("operation", operation),
			zap.Int("violations", len(verrs.Fields)),
		)
		h.respondError(w, http.StatusUnprocessableEntity, "validation failed", verrs.Fields)
		return
	}
	h.respondError(w, http.StatusBadRequest, err.Error(), nil)
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodyBytes), nil)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), nil)
		return nil, false
	}
	return body, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), nil)
		return false
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, target); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse JSON request: %v", err), nil)
		return false
	}
	return true
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string, fields []validation.FieldError) {
	h.respondJSON(w, status, errorResponse{Error: message, Fields: fields})
}

// vehicleFuel normalizes the raw fuel string; unknown values pass through
// so the validator can report them by field.
func vehicleFuel(raw string) vehicle.FuelType {
	if ft, err := vehicle.ParseFuelType(raw); err == nil {
		return ft
	}
	return vehicle.FuelType(raw)
}

func ownershipParamsFromRequest(req ownershipRequest) ownership.Params {
	return ownership.Params{
		CarPrice:              req.CarPrice,
		CarAgeYears:           req.CarAgeYears,
		AnnualMileageKm:       req.AnnualMileageKm,
		FuelType:              vehicleFuel(req.FuelType),
		FuelConsumptionPer100: req.FuelConsumptionPer100,
		HoldingPeriodYears:    req.HoldingPeriodYears,
		CityName:              req.CityName,
	}
}

func toLoanResponse(result loan.Result) loanResponse {
	return loanResponse{
		MonthlyPayment:  result.MonthlyPayment,
		TotalInterest:   result.TotalInterest,
		TotalAmountPaid: result.TotalAmountPaid,
		FinancedAmount:  result.FinancedAmount,
	}
}

func toInsuranceResponse(result insurance.Result) insuranceResponse {
	return insuranceResponse{
		MonthlyPremium: result.MonthlyPremium,
		AnnualPremium:  result.AnnualPremium,
		CoverageBreakdown: coverageBreakdown{
			Liability:      result.CoverageBreakdown.Liability,
			Collision:      result.CoverageBreakdown.Collision,
			TheftFire:      result.CoverageBreakdown.TheftFire,
			PersonalInjury: result.CoverageBreakdown.PersonalInjury,
		},
	}
}

func toOwnershipResponse(result ownership.Result) ownershipResponse {
	yearly := make([]yearCost, len(result.Yearly))
	for i, year := range result.Yearly {
		yearly[i] = yearCost{
			Year:  year.Year,
			Costs: toCostBreakdown(year.Costs),
			Total: year.Total,
		}
	}
	return ownershipResponse{
		TotalCost:          result.TotalCost,
		AverageMonthlyCost: result.AverageMonthlyCost,
		Aggregate:          toCostBreakdown(result.Aggregate),
		Yearly:             yearly,
	}
}

func toCostBreakdown(b ownership.CostBreakdown) costBreakdown {
	return costBreakdown{
		Depreciation: b.Depreciation,
		Fuel:         b.Fuel,
		Insurance:    b.Insurance,
		Maintenance:  b.Maintenance,
		Registration: b.Registration,
		Financing:    b.Financing,
	}
}
