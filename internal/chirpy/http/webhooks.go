package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

// PolkaWebhookHandler receives payment events. An empty APIKey rejects
// every call.
type PolkaWebhookHandler struct {
	UserService *service.UserService
	APIKey      string
}

// ServeHTTP upgrades a user to Chirpy Red.
//
//	@Summary		Payment webhook
//	@Description	Marks a user as Chirpy Red on a user.upgraded event. Other events are acknowledged and ignored.
//	@Tags			Webhooks
//	@Accept			json
//	@Param			Authorization	header	string						true	"ApiKey {key}"
//	@Param			request			body	chirpysdk.WebhookRequest	true	"Event"
//	@Success		204
//	@Failure		401	{object}	chirpysdk.ErrorResponse	"Missing or wrong API key"
//	@Failure		404	{object}	chirpysdk.ErrorResponse	"Unknown user"
//	@Router			/api/polka/webhooks [post].
func (h *PolkaWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key, err := httpx.ExtractAPIKey(r.Header)
	if err != nil || h.APIKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.APIKey)) != 1 {
		httpx.WriteUnauthorized(w)
		return
	}

	var req chirpysdk.WebhookRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	if req.Event != chirpysdk.EventUserUpgraded {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.UserService.UpgradeToChirpyRed(r.Context(), req.Data.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user upgraded to chirpy red", "user_id", req.Data.UserID)
	w.WriteHeader(http.StatusNoContent)
}
