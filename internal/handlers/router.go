package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the pricer endpoints
func NewRouter(h *PricerHandler) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/price", h.PriceHandler).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	api.HandleFunc("/greeks", h.GreeksHandler).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	api.HandleFunc("/payoff", h.PayoffHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sweep/{kind}", h.SweepHandler).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	api.HandleFunc("/smile", h.SmileHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analyze", h.AnalyzeHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/batch", h.BatchHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/defaults", h.DefaultsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/stats", h.StatsHandler).Methods(http.MethodGet)
	api.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	return r
}
