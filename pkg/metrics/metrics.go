// Package metrics registers the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketplace",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	GraphQLErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "graphql_errors_total",
		Help:      "GraphQL errors by extension code.",
	}, []string{"code"})

	AuthRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "auth_service_requests_total",
		Help:      "Calls to the auth service by method and status code.",
	}, []string{"method", "code"})

	CascadeDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "cascade_deleted_documents_total",
		Help:      "Documents removed as dependents of a deleted parent.",
	}, []string{"kind"})

	CleanupRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "cleanup_runs_total",
		Help:      "Scheduled cleanup runs by outcome.",
	}, []string{"outcome"})
)
