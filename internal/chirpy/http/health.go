package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthzHandler godoc
//
//	@Summary		Liveness Check Endpoint
//	@Description	Returns a plain text OK while the process is serving.
//	@Tags			Health
//	@Produce		plain
//	@Success		200	{string}	string	"OK"
//	@Router			/api/healthz [get].
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(http.StatusText(http.StatusOK)))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe returning uptime, version and the status of the database
//	@Description	and, when configured separately, the refresh token store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	chirpysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	chirpysdk.HealthResponse	"service not ready"
//	@Router			/api/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db Pinger, tokenStore Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &chirpysdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := db.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if tokenStore != nil {
			checks.TokenStore = "ok"
			if err := tokenStore.Ping(r.Context()); err != nil {
				checks.TokenStore = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, statusCode, chirpysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
