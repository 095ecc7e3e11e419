package models

import (
	"github.com/jwaldner/vanilla/internal/report"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

// CalculationRequest is a single contract as submitted by a client. Either
// time_to_maturity or expiration_date (YYYY-MM-DD) gives the expiry.
type CalculationRequest struct {
	StockPrice     float64 `json:"stock_price" schema:"stock_price"`
	StrikePrice    float64 `json:"strike_price" schema:"strike_price"`
	TimeToMaturity float64 `json:"time_to_maturity" schema:"time_to_maturity"`
	ExpirationDate string  `json:"expiration_date,omitempty" schema:"expiration_date"`
	RiskFreeRate   float64 `json:"risk_free_rate" schema:"risk_free_rate"`
	Volatility     float64 `json:"volatility" schema:"volatility"`
	OptionType     string  `json:"option_type" schema:"option_type"` // "call" or "put"
}

// PayoffRequest for the expiry P&L diagram
type PayoffRequest struct {
	StockPrice  float64 `json:"stock_price"`
	StrikePrice float64 `json:"strike_price"`
	Premium     float64 `json:"premium"`
	OptionType  string  `json:"option_type"`
}

// SmileRequest for the illustrative volatility smile. A missing base_vol
// takes the configured default; an explicit 0 is kept.
type SmileRequest struct {
	Center  float64  `json:"center"`
	BaseVol *float64 `json:"base_vol,omitempty"`
}

// AnalysisRequest is the full form: a contract plus the premium paid.
type AnalysisRequest struct {
	CalculationRequest
	Premium float64 `json:"premium"`
}

// BatchCalculationRequest for multiple calculations
type BatchCalculationRequest struct {
	Calculations []CalculationRequest `json:"calculations"`
}

// CalculationResponse for Black-Scholes results
type CalculationResponse struct {
	OptionPrice float64 `json:"option_price"`
	Delta       float64 `json:"delta"`
	Gamma       float64 `json:"gamma"`
	Theta       float64 `json:"theta"`
	Vega        float64 `json:"vega"`
	Rho         float64 `json:"rho"`
}

// BatchCalculationResponse for multiple results
type BatchCalculationResponse struct {
	Success           bool                  `json:"success"`
	Results           []CalculationResponse `json:"results"`
	ProcessedIn       float64               `json:"processed_in_ms"`
	ExecutionMode     string                `json:"execution_mode"`
	Workers           int                   `json:"workers"`
	TotalCalculations int                   `json:"total_calculations"`
}

type PriceResponse struct {
	Success bool    `json:"success"`
	Price   float64 `json:"price"`
}

type GreekRow struct {
	Greek  string  `json:"greek"`
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
	Units  string  `json:"units"`
}

type GreeksResponse struct {
	Success bool       `json:"success"`
	Greeks  []GreekRow `json:"greeks"`
}

type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CurveData struct {
	Name    string         `json:"name"`
	XLabel  string         `json:"x_label"`
	YLabel  string         `json:"y_label"`
	Points  []PointData    `json:"points"`
	Summary report.Summary `json:"summary"`
}

type CurveResponse struct {
	Success bool      `json:"success"`
	Curve   CurveData `json:"curve"`
}

type PayoffResponse struct {
	Success    bool      `json:"success"`
	Curve      CurveData `json:"curve"`
	Breakeven  float64   `json:"breakeven"`
	CurrentPnL float64   `json:"current_pnl"`
}

// AnalysisResponse bundles everything the form renders after "Calculate".
type AnalysisResponse struct {
	Success bool                 `json:"success"`
	Price   float64              `json:"price"`
	Greeks  []GreekRow           `json:"greeks"`
	Payoff  PayoffResponse       `json:"payoff"`
	Sweeps  map[string]CurveData `json:"sweeps"`
	Smile   CurveData            `json:"smile"`
	Meta    ResponseMetadata     `json:"meta"`
}

type ResponseMetadata struct {
	OptionType     string  `json:"option_type"`
	Timestamp      string  `json:"timestamp"`
	ProcessingTime float64 `json:"processing_time"`
	ExecutionMode  string  `json:"execution_mode"`
	Workers        int     `json:"workers"`
}

// DefaultsResponse carries the form's starting values.
type DefaultsResponse struct {
	OptionType            string  `json:"option_type"`
	StockPrice            float64 `json:"stock_price"`
	StrikePrice           float64 `json:"strike_price"`
	TimeToMaturity        float64 `json:"time_to_maturity"`
	DefaultExpirationDate string  `json:"default_expiration_date"`
	RiskFreeRate          float64 `json:"risk_free_rate"`
	Volatility            float64 `json:"volatility"`
	Premium               float64 `json:"premium"`
	SmileBaseVol          float64 `json:"smile_base_vol"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// FromGreeksReport converts the engine's report to wire rows.
func FromGreeksReport(r vanilla.GreeksReport) []GreekRow {
	rows := make([]GreekRow, len(r))
	for i, row := range r {
		rows[i] = GreekRow{Greek: row.Greek, Symbol: row.Symbol, Value: row.Value, Units: row.Units}
	}
	return rows
}

// FromCurve converts a curve and attaches its summary.
func FromCurve(c vanilla.SweepCurve) CurveData {
	points := make([]PointData, len(c.Points))
	for i, p := range c.Points {
		points[i] = PointData{X: p.X, Y: p.Y}
	}
	summary, _ := report.Summarize(c) // empty curves summarise to zero values
	return CurveData{Name: c.Name, XLabel: c.XLabel, YLabel: c.YLabel, Points: points, Summary: summary}
}

// FromValuation converts a batch result.
func FromValuation(v vanilla.Valuation) CalculationResponse {
	return CalculationResponse{
		OptionPrice: v.TheoreticalPrice,
		Delta:       v.Greeks.Delta,
		Gamma:       v.Greeks.Gamma,
		Theta:       v.Greeks.Theta,
		Vega:        v.Greeks.Vega,
		Rho:         v.Greeks.Rho,
	}
}
