// Package metrics defines the Prometheus collectors exported on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "site_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Media index metrics
var (
	MediaIndexBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_media_index_builds_total",
			Help: "Total number of media index builds",
		},
	)

	MediaIndexLastBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "site_media_index_last_build_duration_seconds",
			Help: "Duration of the last media index build in seconds",
		},
	)

	MediaIndexItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "site_media_index_items",
			Help: "Number of media items per category in the last built index",
		},
		[]string{"category"},
	)

	MediaScanSkippedDirs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_media_scan_skipped_dirs_total",
			Help: "Total number of unreadable directories skipped while scanning the media root",
		},
	)
)

// Quote intake metrics
var (
	QuoteSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_quote_submissions_total",
			Help: "Total number of quote request submissions by outcome",
		},
		[]string{"outcome"},
	)
)

// Quote submission outcomes
const (
	QuoteOutcomeCreated       = "created"
	QuoteOutcomeDiscarded     = "discarded"
	QuoteOutcomeInvalid       = "invalid"
	QuoteOutcomeCaptchaFailed = "captcha_failed"
	QuoteOutcomeError         = "error"
)
