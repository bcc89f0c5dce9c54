// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Query metrics (FILTER, GROUP, RECOMMEND, SUGGEST).
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accounts_query_duration_seconds",
			Help:    "Duration of accounts queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_query_errors_total",
			Help: "Total number of accounts query errors",
		},
		[]string{"query"},
	)

	// Mutation metrics (insert, patch, like).
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_mutations_total",
			Help: "Total number of accounts mutations",
		},
		[]string{"kind"},
	)

	MutationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_mutation_errors_total",
			Help: "Total number of accounts mutation errors",
		},
		[]string{"kind"},
	)

	// Generic API request metrics, used by internal/middleware.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordQuery records one FILTER/GROUP/RECOMMEND/SUGGEST call.
func RecordQuery(query string, duration time.Duration, err error) {
	QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(query).Inc()
	}
}

// RecordMutation records one insert/patch/like call.
func RecordMutation(kind string, err error) {
	MutationsTotal.WithLabelValues(kind).Inc()
	if err != nil {
		MutationErrors.WithLabelValues(kind).Inc()
	}
}

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
