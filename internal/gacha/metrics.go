// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for draw and refresh metrics.
const (
	StatusSuccess           = "success"
	StatusError             = "error"
	StatusInsufficientFunds = "insufficient_funds"
	StatusNoContainer       = "no_container"
	StatusEmptySlot         = "empty_slot"
)

// Draws counts purchase transitions by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var Draws = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gachapoint_draws_total",
		Help: "Total number of purchase/draw attempts by status",
	},
	[]string{"status"},
)

// Registrations counts marker registration transitions by outcome.
var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gachapoint_registrations_total",
		Help: "Total number of draw-point registrations by status",
	},
	[]string{"status"},
)

// CacheRefreshes counts sign cache rebuilds by outcome.
var CacheRefreshes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gachapoint_cache_refreshes_total",
		Help: "Total number of sign cache refreshes by status",
	},
	[]string{"status"},
)

// RegisterMetrics registers gacha package metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Draws)
	reg.MustRegister(Registrations)
	reg.MustRegister(CacheRefreshes)
}

// RecordDraw increments the draw counter with the given status.
func RecordDraw(status string) {
	Draws.WithLabelValues(status).Inc()
}

// RecordRegistration increments the registration counter.
func RecordRegistration(status string) {
	Registrations.WithLabelValues(status).Inc()
}

// RecordCacheRefresh increments the cache refresh counter.
func RecordCacheRefresh(status string) {
	CacheRefreshes.WithLabelValues(status).Inc()
}
