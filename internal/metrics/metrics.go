// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "firewood"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Recorded check-ins by visitor kind (registered, anonymous).",
	}, []string{"visitor"})

	CheckInsRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_rate_limited_total",
		Help:      "Check-ins refused because the daily limit was reached.",
	})

	StandUpdateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stand_inventory_update_failures_total",
		Help:      "Check-ins stored without their stand inventory update.",
	})

	StandSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stand_submissions_total",
		Help:      "Stand submissions by form (strict, wizard).",
	}, []string{"form"})

	MalformedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_rows_total",
		Help:      "Stored rows skipped because they did not map to a valid record.",
	}, []string{"table"})

	PhotosProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_total",
		Help:      "Uploaded photos by outcome (stored, too_large, over_count, unsupported).",
	}, []string{"outcome"})

	FeedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_clients",
		Help:      "Open live check-in feed connections.",
	})
)
