package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

var errChirpTooLongMsg = fmt.Sprintf("Chirp is too long. Max length is %d", service.MaxChirpLength)

// writeServiceError maps a service error to its HTTP response. Anything it
// does not recognise is logged and answered with a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteUnauthorized(w)
	case errors.Is(err, service.ErrChirpTooLong):
		httpx.WriteError(w, http.StatusBadRequest, errChirpTooLongMsg)
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrSessionCreationFailed):
		httpx.WriteError(w, http.StatusInternalServerError, "Couldn't create session")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeBadBody(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Debug("rejecting request body", "err", err)
	httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
}
