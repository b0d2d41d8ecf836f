package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmint_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Generation Job Metrics
	JobsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_jobs_submitted_total",
			Help: "Total number of generation jobs submitted",
		},
		[]string{"resolution"},
	)

	JobsCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_jobs_completed_total",
			Help: "Total number of generation jobs that reached a terminal state",
		},
		[]string{"status"},
	)

	JobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmint_jobs_in_progress",
			Help: "Number of jobs currently generating",
		},
	)

	JobsQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmint_jobs_queue_depth",
			Help: "Number of jobs waiting in the queue",
		},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmint_job_duration_seconds",
			Help:    "Job processing duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"resolution"},
	)

	SegmentsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_segments_generated_total",
			Help: "Total number of segment generation attempts",
		},
		[]string{"status"},
	)

	// Ledger Metrics
	SecondsDebitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmint_seconds_debited_total",
			Help: "Total seconds debited for generation",
		},
	)

	SecondsRefundedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmint_seconds_refunded_total",
			Help: "Total seconds refunded after failed jobs",
		},
	)

	AdWatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_ad_watches_total",
			Help: "Total number of ad watch attempts",
		},
		[]string{"outcome"},
	)

	AdSecondsEarnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmint_ad_seconds_earned_total",
			Help: "Total seconds credited from ad watches",
		},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_purchases_total",
			Help: "Total number of completed package purchases",
		},
		[]string{"package"},
	)

	WithdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_withdrawals_total",
			Help: "Total number of withdrawal requests",
		},
		[]string{"outcome"},
	)

	// Moderation Metrics
	PromptsFlaggedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmint_prompts_flagged_total",
			Help: "Total number of prompts rejected by the content filter",
		},
	)

	// Cache Metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmint_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordJobSubmitted records a job submission and the seconds it debited
func RecordJobSubmitted(resolution string, secondsDebited int64) {
	JobsSubmittedTotal.WithLabelValues(resolution).Inc()
	SecondsDebitedTotal.Add(float64(secondsDebited))
}

// RecordJobCompleted records a job reaching a terminal state
func RecordJobCompleted(status, resolution string, duration float64, secondsRefunded int64) {
	JobsCompletedTotal.WithLabelValues(status).Inc()
	JobDuration.WithLabelValues(resolution).Observe(duration)
	if secondsRefunded > 0 {
		SecondsRefundedTotal.Add(float64(secondsRefunded))
	}
}

// RecordSegmentOutcome records one segment generation attempt
func RecordSegmentOutcome(status string) {
	SegmentsGeneratedTotal.WithLabelValues(status).Inc()
}

// RecordAdWatch records an ad watch attempt
func RecordAdWatch(granted bool, secondsEarned int64) {
	if granted {
		AdWatchesTotal.WithLabelValues("granted").Inc()
		AdSecondsEarnedTotal.Add(float64(secondsEarned))
	} else {
		AdWatchesTotal.WithLabelValues("capped").Inc()
	}
}

// RecordPurchase records a completed package purchase
func RecordPurchase(packageID string) {
	PurchasesTotal.WithLabelValues(packageID).Inc()
}

// RecordWithdrawal records a withdrawal attempt
func RecordWithdrawal(outcome string) {
	WithdrawalsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheAccess records cache hit or miss
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHitsTotal.WithLabelValues(cacheType).Inc()
	} else {
		CacheMissesTotal.WithLabelValues(cacheType).Inc()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
