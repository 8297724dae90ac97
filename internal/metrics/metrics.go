// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Package metrics holds the Prometheus collectors for the console server and
// the sync tool. Collectors register on the default registry via promauto and
// are exposed by promhttp at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Canvas upstream metrics
	CanvasRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvas_requests_total",
			Help: "Total number of Canvas REST API requests",
		},
		[]string{"operation", "status_code"},
	)

	CanvasRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canvas_request_duration_seconds",
			Help:    "Canvas REST API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	CanvasRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvas_request_errors_total",
			Help: "Total number of failed Canvas requests by error type",
		},
		[]string{"operation", "error_type"},
	)

	// API endpoint metrics
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
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Console metrics
	ConsoleActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_active_sessions",
			Help: "Current number of console sessions held in memory",
		},
	)

	ConsoleLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_logins_total",
			Help: "Total number of console token submissions by result",
		},
		[]string{"result"}, // "authenticated", "rejected", "error"
	)

	// Sync metrics
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of sync runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	SyncUpdatesFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_updates_found_total",
			Help: "Total number of remote files missing locally",
		},
	)

	SyncFilesDownloaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_files_downloaded_total",
			Help: "Total number of files downloaded",
		},
	)

	SyncBytesDownloaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_bytes_downloaded_total",
			Help: "Total bytes written by downloads",
		},
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_errors_total",
			Help: "Total number of sync errors by type",
		},
		[]string{"error_type"},
	)

	// Harness metrics
	HarnessCoursesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "harness_courses_created_total",
			Help: "Total number of courses created through the console",
		},
	)

	HarnessCoursesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "harness_courses_deleted_total",
			Help: "Total number of courses deleted through the console",
		},
	)
)

// RecordCanvasRequest records one upstream call. status is 0 when no
// response was received.
func RecordCanvasRequest(operation string, status int, duration time.Duration, err error) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	CanvasRequestsTotal.WithLabelValues(operation, code).Inc()
	CanvasRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		CanvasRequestErrors.WithLabelValues(operation, canvasErrorType(status)).Inc()
	}
}

func canvasErrorType(status int) string {
	switch {
	case status == 401:
		return "unauthorized"
	case status >= 500:
		return "server"
	case status >= 400:
		return "client"
	case status > 0:
		return "decode"
	default:
		return "transport"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLogin records a console token submission.
func RecordLogin(result string) {
	ConsoleLogins.WithLabelValues(result).Inc()
}

// RecordSyncRun records a finished sync run.
func RecordSyncRun(duration time.Duration, updates int, err error) {
	SyncDuration.Observe(duration.Seconds())
	SyncUpdatesFound.Add(float64(updates))
	if err != nil {
		SyncErrors.WithLabelValues("run").Inc()
	}
}

// RecordDownload records one download attempt.
func RecordDownload(bytes int64, err error) {
	if err != nil {
		SyncErrors.WithLabelValues("download").Inc()
		return
	}
	SyncFilesDownloaded.Inc()
	SyncBytesDownloaded.Add(float64(bytes))
}
