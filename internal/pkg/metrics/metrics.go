// Package metrics содержит prometheus-метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GeocodeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "doleances_geocode_requests_total",
		Help: "Total geocoder requests by outcome",
	}, []string{"outcome"})

	GeocodeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "doleances_geocode_duration_ms",
		Help:    "Geocoder call duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "doleances_geocode_cache_hits_total",
		Help: "Geocode proxy cache hits",
	})

	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "doleances_geocode_cache_misses_total",
		Help: "Geocode proxy cache misses",
	})

	StaleSearchResponsesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "doleances_stale_search_responses_total",
		Help: "Location search responses discarded because a newer query was issued",
	})

	AdminAreaLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "doleances_admin_area_loads_total",
		Help: "Administrative level source loads by level and outcome",
	}, []string{"level", "outcome"})

	ReportsSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "doleances_reports_submitted_total",
		Help: "Reports persisted",
	})

	ReportForwardsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "doleances_report_forwards_total",
		Help: "Reports forwarded to n8n by the worker, by outcome",
	}, []string{"outcome"})

	ChatSessionsSweptTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "doleances_chat_sessions_swept_total",
		Help: "Expired chat responses removed from the in-memory store",
	})

	N8NRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "doleances_n8n_requests_total",
		Help: "Outbound n8n webhook calls by hook and outcome",
	}, []string{"hook", "outcome"})
)

func init() {
	prometheus.MustRegister(
		GeocodeRequestsTotal,
		GeocodeDurationMs,
		GeocodeCacheHitsTotal,
		GeocodeCacheMissesTotal,
		StaleSearchResponsesTotal,
		AdminAreaLoadsTotal,
		ReportsSubmittedTotal,
		ReportForwardsTotal,
		ChatSessionsSweptTotal,
		N8NRequestsTotal,
	)
}
