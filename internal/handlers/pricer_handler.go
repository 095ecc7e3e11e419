package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/jwaldner/vanilla/internal/config"
	"github.com/jwaldner/vanilla/internal/logger"
	"github.com/jwaldner/vanilla/internal/models"
	"github.com/jwaldner/vanilla/internal/services"
	"github.com/jwaldner/vanilla/internal/utils"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PricerHandler handles pricing requests - HTTP layer only, the math lives in vanilla_lib
type PricerHandler struct {
	config   *config.Config
	perf     *services.PerformanceWrapper
	requests *services.RequestService
	now      func() time.Time
}

// NewPricerHandler creates a new pricer handler
func NewPricerHandler(cfg *config.Config, engine *vanilla.Engine) *PricerHandler {
	return &PricerHandler{
		config:   cfg,
		perf:     services.NewPerformanceWrapper(engine),
		requests: services.NewRequestService(cfg.Defaults),
		now:      time.Now,
	}
}

// PriceHandler prices a single contract (GET query or POST body)
func (h *PricerHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "GET, POST, OPTIONS") {
		return
	}

	contract, err := h.parseContract(r)
	if err != nil {
		writeError(w, err)
		return
	}

	price, err := vanilla.PriceContract(contract)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Verbose.Printf("💰 PRICE: %s S=%.2f K=%.2f T=%.4f r=%.4f σ=%.4f → %.4f",
		contract.Type, contract.Spot, contract.Strike, contract.Expiry, contract.Rate, contract.Volatility, price)
	writeJSON(w, http.StatusOK, models.PriceResponse{Success: true, Price: price})
}

// GreeksHandler returns the five-row Greeks report
func (h *PricerHandler) GreeksHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "GET, POST, OPTIONS") {
		return
	}

	contract, err := h.parseContract(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := vanilla.ComputeGreeks(contract)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GreeksResponse{Success: true, Greeks: models.FromGreeksReport(report)})
}

// PayoffHandler returns the P&L-at-expiry diagram
func (h *PricerHandler) PayoffHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "POST, OPTIONS") {
		return
	}

	req, err := h.requests.ParsePayoffRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	optionType, err := vanilla.ParseOptionType(req.OptionType)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := vanilla.PayoffCurve(req.StockPrice, req.StrikePrice, req.Premium, optionType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payoffResponse(result))
}

// SweepHandler evaluates one of the named parameter sweeps
func (h *PricerHandler) SweepHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "GET, POST, OPTIONS") {
		return
	}

	kind := mux.Vars(r)["kind"]
	sweep, ok := vanilla.LookupSweep(kind)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("unknown sweep %q", kind)})
		return
	}

	contract, err := h.parseContract(r)
	if err != nil {
		writeError(w, err)
		return
	}

	curve, err := h.perf.Sweep(r.Context(), kind, contract, sweep)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CurveResponse{Success: true, Curve: models.FromCurve(curve)})
}

// SmileHandler returns the illustrative volatility smile
func (h *PricerHandler) SmileHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "POST, OPTIONS") {
		return
	}

	req, err := h.requests.ParseSmileRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	curve, err := vanilla.VolSmile(req.Center, *req.BaseVol)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CurveResponse{Success: true, Curve: models.FromCurve(curve)})
}

// AnalyzeHandler computes everything the form displays in one call: price,
// Greeks, payoff, every sweep and the smile centred on the strike. All curves use
// the requested option type.
func (h *PricerHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "POST, OPTIONS") {
		return
	}
	start := time.Now()

	req, err := h.requests.ParseAnalysisRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	contract, err := h.requests.ToContract(req.CalculationRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info.Printf("📊 ANALYZE: %s S=%.2f K=%.2f T=%.4f r=%.4f σ=%.4f premium=%.4f",
		contract.Type, contract.Spot, contract.Strike, contract.Expiry, contract.Rate, contract.Volatility, req.Premium)

	response, err := h.analyze(r.Context(), contract, req.Premium)
	if err != nil {
		logger.Warn.Printf("⚠️  ANALYZE FAILED: %v", err)
		writeError(w, err)
		return
	}

	engine := h.perf.Engine()
	response.Meta = models.ResponseMetadata{
		OptionType:     contract.Type.String(),
		Timestamp:      h.now().Format(time.RFC3339),
		ProcessingTime: time.Since(start).Seconds(),
		ExecutionMode:  string(engine.ExecutionMode()),
		Workers:        engine.Workers(),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *PricerHandler) analyze(ctx context.Context, contract vanilla.OptionContract, premium float64) (*models.AnalysisResponse, error) {
	price, err := vanilla.PriceContract(contract)
	if err != nil {
		return nil, err
	}

	report, err := vanilla.ComputeGreeks(contract)
	if err != nil {
		return nil, err
	}

	payoff, err := vanilla.PayoffCurve(contract.Spot, contract.Strike, premium, contract.Type)
	if err != nil {
		return nil, err
	}

	curves := make(map[string]models.CurveData, len(vanilla.SweepKinds))
	for _, kind := range vanilla.SweepKinds {
		sweep, _ := vanilla.LookupSweep(kind)
		curve, err := h.perf.Sweep(ctx, kind, contract, sweep)
		if err != nil {
			return nil, err
		}
		curves[kind] = models.FromCurve(curve)
	}

	smile, err := vanilla.VolSmile(contract.Strike, h.config.Defaults.SmileBaseVol)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResponse{
		Success: true,
		Price:   price,
		Greeks:  models.FromGreeksReport(report),
		Payoff:  payoffResponse(payoff),
		Sweeps:  curves,
		Smile:   models.FromCurve(smile),
	}, nil
}

// BatchHandler prices many contracts through the engine
func (h *PricerHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "POST, OPTIONS") {
		return
	}

	req, err := h.requests.ParseBatchRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	contracts := make([]vanilla.OptionContract, len(req.Calculations))
	for i, calc := range req.Calculations {
		c, err := h.requests.ToContract(calc)
		if err != nil {
			writeError(w, fmt.Errorf("calculation %d: %w", i, err))
			return
		}
		contracts[i] = c
	}

	valuations, duration, err := h.perf.CalculateBlackScholes(r.Context(), contracts)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]models.CalculationResponse, len(valuations))
	for i, v := range valuations {
		results[i] = models.FromValuation(v)
	}

	engine := h.perf.Engine()
	logger.Info.Printf("🔢 BATCH: %d contracts in %v (%s)", len(results), duration, engine.ExecutionMode())
	writeJSON(w, http.StatusOK, models.BatchCalculationResponse{
		Success:           true,
		Results:           results,
		ProcessedIn:       float64(duration.Microseconds()) / 1000,
		ExecutionMode:     string(engine.ExecutionMode()),
		Workers:           engine.Workers(),
		TotalCalculations: len(results),
	})
}

// DefaultsHandler returns the values the input form starts from
func (h *PricerHandler) DefaultsHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "GET, OPTIONS") {
		return
	}

	d := h.config.Defaults
	writeJSON(w, http.StatusOK, models.DefaultsResponse{
		OptionType:            d.OptionType,
		StockPrice:            d.Spot,
		StrikePrice:           d.Strike,
		TimeToMaturity:        d.TimeToMaturity,
		DefaultExpirationDate: utils.CalculateNextOptionsExpiration(h.now()),
		RiskFreeRate:          d.RiskFreeRate,
		Volatility:            d.Volatility,
		Premium:               d.Premium,
		SmileBaseVol:          d.SmileBaseVol,
	})
}

// StatsHandler reports engine call timings
func (h *PricerHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	writeJSON(w, http.StatusOK, h.perf.Stats())
}

// HealthHandler is a liveness probe
func (h *PricerHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"execution_mode": string(h.perf.Engine().ExecutionMode()),
		"timestamp":      h.now().Format(time.RFC3339),
	})
}

func (h *PricerHandler) parseContract(r *http.Request) (vanilla.OptionContract, error) {
	req, err := h.requests.ParseCalculationRequest(r)
	if err != nil {
		return vanilla.OptionContract{}, err
	}
	return h.requests.ToContract(*req)
}

func payoffResponse(p vanilla.PayoffResult) models.PayoffResponse {
	return models.PayoffResponse{
		Success:    true,
		Curve:      models.FromCurve(p.Curve),
		Breakeven:  p.Breakeven,
		CurrentPnL: p.CurrentPnL,
	}
}

// preflight sets the CORS headers and reports whether the request was an
// OPTIONS preflight that has already been answered.
func preflight(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("❌ Failed to encode response: %v", err)
	}
}

// writeError maps engine errors to status codes: singularities are 422,
// rejected inputs and malformed requests are 400.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, vanilla.ErrSingularity):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, vanilla.ErrDomainInput):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: err.Error()})
}
