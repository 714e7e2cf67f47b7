package http

import (
	"net/http"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/clinicsdk"
	"github.com/medranosoft/citamed/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It degrades to 503 when the database
// stops answering.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &clinicsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, clinicsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
