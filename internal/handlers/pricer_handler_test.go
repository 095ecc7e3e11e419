package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/vanilla/internal/config"
	"github.com/jwaldner/vanilla/internal/models"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

const atmCall = `{"stock_price":100,"strike_price":100,"time_to_maturity":1,"risk_free_rate":0.01,"volatility":0.2,"option_type":"call"}`

func testConfig() *config.Config {
	return &config.Config{
		Port: "0",
		Defaults: config.DefaultsConfig{
			OptionType: "call", Spot: 100, Strike: 100, TimeToMaturity: 1,
			RiskFreeRate: 0.01, Volatility: 0.2, Premium: 5, SmileBaseVol: 0.2,
		},
	}
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	h := NewPricerHandler(testConfig(), vanilla.NewEngineForced("sequential"))
	h.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return NewRouter(h)
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestPriceHandler(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/price", atmCall)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp models.PriceResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 8.4333, resp.Price)

	w = do(t, srv, http.MethodGet, "/api/price?stock_price=100&strike_price=100&time_to_maturity=1&risk_free_rate=0.01&volatility=0.2&option_type=put", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, 7.4383, resp.Price)
}

func TestPriceHandlerErrors(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/price", `{"stock_price":-1,"strike_price":100,"time_to_maturity":1,"volatility":0.2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	decode(t, w, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "spot")

	w = do(t, srv, http.MethodPost, "/api/price", `{"stock_price":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodOptions, "/api/price", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGreeksHandler(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/greeks", atmCall)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GreeksResponse
	decode(t, w, &resp)
	require.Len(t, resp.Greeks, 5)

	names := make([]string, len(resp.Greeks))
	for i, row := range resp.Greeks {
		names[i] = row.Greek
	}
	assert.Equal(t, []string{"Delta", "Gamma", "Vega", "Theta", "Rho"}, names)
	assert.Equal(t, 0.5596, resp.Greeks[0].Value)
	assert.Equal(t, "per day", resp.Greeks[3].Units)
}

func TestGreeksHandlerSingularity(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/greeks", `{"stock_price":100,"strike_price":100,"time_to_maturity":0,"volatility":0.2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPayoffHandler(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/payoff", `{"stock_price":100,"strike_price":100,"premium":5,"option_type":"call"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PayoffResponse
	decode(t, w, &resp)
	assert.Equal(t, 105.0, resp.Breakeven)
	assert.Equal(t, -5.0, resp.CurrentPnL)
	assert.Len(t, resp.Curve.Points, vanilla.SweepSamples)

	w = do(t, srv, http.MethodPost, "/api/payoff", `{"stock_price":100,"strike_price":100,"premium":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweepHandler(t *testing.T) {
	srv := newTestServer(t)

	for _, kind := range vanilla.SweepKinds {
		t.Run(kind, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/sweep/"+kind, atmCall)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp models.CurveResponse
			decode(t, w, &resp)
			assert.Equal(t, kind, resp.Curve.Name)
			assert.Len(t, resp.Curve.Points, vanilla.SweepSamples)
			assert.Equal(t, vanilla.SweepSamples, resp.Curve.Summary.Samples)
		})
	}

	w := do(t, srv, http.MethodPost, "/api/sweep/gamma", atmCall)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSweepHandlerUsesOptionType(t *testing.T) {
	srv := newTestServer(t)
	put := strings.Replace(atmCall, `"call"`, `"put"`, 1)

	w := do(t, srv, http.MethodPost, "/api/sweep/delta", put)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CurveResponse
	decode(t, w, &resp)
	for _, p := range resp.Curve.Points {
		assert.LessOrEqual(t, p.Y, 0.0)
	}
}

func TestSmileHandler(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/smile", `{"center":100}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CurveResponse
	decode(t, w, &resp)
	require.Len(t, resp.Curve.Points, vanilla.SmileSamples)
	assert.InDelta(t, 80.0, resp.Curve.Points[0].X, 1e-9)
	assert.InDelta(t, 0.21, resp.Curve.Points[0].Y, 1e-9)

	w = do(t, srv, http.MethodPost, "/api/smile", `{"center":100,"base_vol":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.InDelta(t, 0.01, resp.Curve.Points[0].Y, 1e-9)
	assert.InDelta(t, 0.0, resp.Curve.Summary.MinY, 0.001)

	w = do(t, srv, http.MethodPost, "/api/smile", `{"center":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeHandler(t *testing.T) {
	srv := newTestServer(t)
	body := strings.Replace(atmCall, `"option_type":"call"`, `"option_type":"put","premium":3`, 1)

	w := do(t, srv, http.MethodPost, "/api/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AnalysisResponse
	decode(t, w, &resp)
	assert.Equal(t, 7.4383, resp.Price)
	assert.Len(t, resp.Greeks, 5)
	assert.Equal(t, 97.0, resp.Payoff.Breakeven)
	assert.Len(t, resp.Sweeps, len(vanilla.SweepKinds))
	assert.Len(t, resp.Smile.Points, vanilla.SmileSamples)
	assert.Equal(t, "put", resp.Meta.OptionType)
	assert.Equal(t, "sequential", resp.Meta.ExecutionMode)

	// A put loses value as spot rises.
	spot := resp.Sweeps["spot"].Points
	assert.Greater(t, spot[0].Y, spot[len(spot)-1].Y)
}

func TestAnalyzeHandlerSmileCentredOnStrike(t *testing.T) {
	srv := newTestServer(t)
	body := `{"stock_price":100,"strike_price":150,"time_to_maturity":1,"risk_free_rate":0.01,"volatility":0.2,"option_type":"call","premium":1}`

	w := do(t, srv, http.MethodPost, "/api/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AnalysisResponse
	decode(t, w, &resp)
	smile := resp.Smile.Points
	require.Len(t, smile, vanilla.SmileSamples)
	assert.InDelta(t, 120.0, smile[0].X, 1e-9)
	assert.InDelta(t, 180.0, smile[len(smile)-1].X, 1e-9)
	assert.InDelta(t, 0.21, smile[0].Y, 1e-9)

	// The spot-based curves still follow spot.
	spot := resp.Sweeps["spot"].Points
	assert.InDelta(t, 50.0, spot[0].X, 1e-9)
	assert.InDelta(t, 150.0, spot[len(spot)-1].X, 1e-9)
}

func TestBatchHandler(t *testing.T) {
	srv := newTestServer(t)
	put := strings.Replace(atmCall, `"call"`, `"put"`, 1)

	w := do(t, srv, http.MethodPost, "/api/batch", `{"calculations":[`+atmCall+`,`+put+`]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.BatchCalculationResponse
	decode(t, w, &resp)
	require.Equal(t, 2, resp.TotalCalculations)
	assert.Equal(t, 8.4333, resp.Results[0].OptionPrice)
	assert.Equal(t, 7.4383, resp.Results[1].OptionPrice)
	assert.Equal(t, -0.4404, resp.Results[1].Delta)

	w = do(t, srv, http.MethodPost, "/api/batch", `{"calculations":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDefaultsAndStats(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/defaults", "")
	require.Equal(t, http.StatusOK, w.Code)

	var defaults models.DefaultsResponse
	decode(t, w, &defaults)
	assert.Equal(t, "call", defaults.OptionType)
	assert.Equal(t, "2026-10-16", defaults.DefaultExpirationDate)

	do(t, srv, http.MethodPost, "/api/sweep/spot", atmCall)

	w = do(t, srv, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_requests":1`)

	w = do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
