package http

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

const metricsPage = `<html>
  <body>
    <h1>Welcome, Chirpy Admin</h1>
    <p>Chirpy has been visited %d times!</p>
  </body>
</html>`

// MetricsHandler godoc
//
//	@Summary		File server hit count
//	@Tags			Admin
//	@Produce		html
//	@Success		200	{string}	string	"HTML page"
//	@Router			/admin/metrics [get].
func MetricsHandler(hits *httpx.HitCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, metricsPage, hits.Load())
	}
}

// ResetHandler zeroes the hit counter and deletes every user. It only works
// on the dev platform.
type ResetHandler struct {
	UserService *service.UserService
	Hits        *httpx.HitCounter
	Platform    string
}

// ServeHTTP godoc
//
//	@Summary		Reset state
//	@Description	Development only. Resets the hit counter and deletes all users with their tokens and chirps.
//	@Tags			Admin
//	@Success		200
//	@Failure		403	{object}	chirpysdk.ErrorResponse	"Not a dev environment"
//	@Router			/admin/reset [post].
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if h.Platform != PlatformDev {
		log.Warn("reset refused outside dev", "platform", h.Platform)
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	h.Hits.Reset()
	if err := h.UserService.DeleteAllUsers(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Warn("state reset")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hits reset to 0 and database reset to initial state."))
}
