package middleware

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Metrics stores application counters.
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsFailed     uint64
	AnalysesTotal      uint64
	AnalysesGoodFit    uint64
	AnalysesRejected   uint64
	AnalysesFailed     uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// CountAnalysis records the outcome of one pipeline run.
func CountAnalysis(goodFit, failed bool) {
	atomic.AddUint64(&globalMetrics.AnalysesTotal, 1)
	switch {
	case failed:
		atomic.AddUint64(&globalMetrics.AnalysesFailed, 1)
	case goodFit:
		atomic.AddUint64(&globalMetrics.AnalysesGoodFit, 1)
	default:
		atomic.AddUint64(&globalMetrics.AnalysesRejected, 1)
	}
}

// CountRequests tracks request totals and failures around each handler.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
		atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
		defer atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= http.StatusInternalServerError {
			atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
		}
	})
}

type metricsSnapshot struct {
	RequestsTotal      uint64  `json:"requests_total"`
	RequestsInProgress uint64  `json:"requests_in_progress"`
	RequestsFailed     uint64  `json:"requests_failed"`
	AnalysesTotal      uint64  `json:"analyses_total"`
	AnalysesGoodFit    uint64  `json:"analyses_good_fit"`
	AnalysesRejected   uint64  `json:"analyses_rejected"`
	AnalysesFailed     uint64  `json:"analyses_failed"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
}

// MetricsHandler serves the current counters as JSON.
func MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := metricsSnapshot{
			RequestsTotal:      atomic.LoadUint64(&globalMetrics.RequestsTotal),
			RequestsInProgress: atomic.LoadUint64(&globalMetrics.RequestsInProgress),
			RequestsFailed:     atomic.LoadUint64(&globalMetrics.RequestsFailed),
			AnalysesTotal:      atomic.LoadUint64(&globalMetrics.AnalysesTotal),
			AnalysesGoodFit:    atomic.LoadUint64(&globalMetrics.AnalysesGoodFit),
			AnalysesRejected:   atomic.LoadUint64(&globalMetrics.AnalysesRejected),
			AnalysesFailed:     atomic.LoadUint64(&globalMetrics.AnalysesFailed),
			UptimeSeconds:      time.Since(globalMetrics.StartTime).Seconds(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}
