package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	submissionsGraded     *prometheus.CounterVec
	regradeRunsTotal      prometheus.Counter
	githubLookupsDuration prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orghub_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orghub_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orghub_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		submissionsGraded = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orghub_submissions_graded_total",
			Help: "Portfolio submissions graded, labeled by resulting status.",
		}, []string{"status"})

		regradeRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orghub_regrade_runs_total",
			Help: "Completed portfolio regrade operations.",
		})

		githubLookupsDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orghub_github_lookup_seconds",
			Help:    "Latency distribution for GitHub pull-request lookups.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, submissionsGraded, regradeRunsTotal, githubLookupsDuration)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for served requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// SubmissionsGraded exposes the counter for graded submissions.
func SubmissionsGraded() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsGraded
}

// RegradeRuns exposes the counter for regrade operations.
func RegradeRuns() prometheus.Counter {
	RegisterMetrics()
	return regradeRunsTotal
}

// GithubLookupDuration exposes the histogram for pull-request lookups.
func GithubLookupDuration() prometheus.Histogram {
	RegisterMetrics()
	return githubLookupsDuration
}
