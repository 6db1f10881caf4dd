package handler

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the banking endpoints. Routes are named so the metrics
// middleware can label by route instead of raw path.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET").Name("metrics")
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")
	r.HandleFunc("/login", h.Login).Methods("POST").Name("login")
	r.HandleFunc("/statement", h.Statement).Methods("GET").Name("statement")
	r.HandleFunc("/sort", h.ToggleSort).Methods("POST").Name("sort_toggle")
	r.HandleFunc("/transfers", h.Transfer).Methods("POST").Name("transfer")
	r.HandleFunc("/loans", h.RequestLoan).Methods("POST").Name("loan_request")
	r.HandleFunc("/account", h.CloseAccount).Methods("DELETE").Name("account_close")

	return r
}
