package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthStatus represents the service health report.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus represents an individual check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports whether the provider credential and the optional
// report archive are configured. No outbound calls are made.
func HealthHandler(providerConfigured, archiveEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]CheckStatus{}

		status := "ok"
		if providerConfigured {
			checks["provider"] = CheckStatus{Status: "ok"}
		} else {
			checks["provider"] = CheckStatus{Status: "unconfigured", Message: "no API key set"}
			status = "degraded"
		}

		if archiveEnabled {
			checks["archive"] = CheckStatus{Status: "ok"}
		} else {
			checks["archive"] = CheckStatus{Status: "disabled"}
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(HealthStatus{
			Status:    status,
			Timestamp: time.Now(),
			Checks:    checks,
		})
	}
}
