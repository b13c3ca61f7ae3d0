package http

import (
	"net/http"
	"time"

	"github.com/gatehouse-auth/gatehouse/internal/auth/store"
	"github.com/gatehouse-auth/gatehouse/pkg/authsdk"
	"github.com/gatehouse-auth/gatehouse/pkg/httpx"
)

// ReadyzHandler reports readiness, pinging the store on each probe.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{Database: "ok"}
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
