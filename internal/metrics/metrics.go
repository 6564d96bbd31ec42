// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts Submit outcomes: ok, unauthenticated, invalid, conflict, remote_error.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codestreak_submissions_total",
		Help: "Submission attempts by outcome",
	}, []string{"result"})

	// CacheWriteFailures counts completions the sink accepted but the cache did not.
	CacheWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codestreak_completion_cache_write_failures_total",
		Help: "Completion cache writes that failed after a successful remote write",
	})

	Reviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codestreak_reviews_total",
		Help: "AI code review calls by outcome",
	}, []string{"result"})

	ReviewDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codestreak_review_duration_seconds",
		Help:    "AI code review latency",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codestreak_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)
