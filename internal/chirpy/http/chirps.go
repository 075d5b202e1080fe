package http

import (
	"net/http"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
)

type ChirpsHandler struct {
	ChirpService *service.ChirpService
}

// HandleCreate posts a chirp as the authenticated user.
//
//	@Summary		Create chirp
//	@Description	Posts a chirp of at most 140 characters. Profane words are masked.
//	@Tags			Chirps
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chirpysdk.ChirpRequest	true	"Chirp body"
//	@Success		201		{object}	chirpysdk.Chirp
//	@Failure		400		{object}	chirpysdk.ErrorResponse	"Empty or too long"
//	@Failure		401		{object}	chirpysdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/api/chirps [post].
func (h *ChirpsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}

	var req chirpysdk.ChirpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	chirp, err := h.ChirpService.Create(r.Context(), userID, req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toChirp(chirp))
}

// HandleList lists chirps.
//
//	@Summary		List chirps
//	@Tags			Chirps
//	@Produce		json
//	@Param			authorId	query	string	false	"Only chirps by this user"
//	@Param			sort		query	string	false	"asc (default) or desc by creation time"
//	@Success		200			{array}	chirpysdk.Chirp
//	@Router			/api/chirps [get].
func (h *ChirpsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	chirps, err := h.ChirpService.List(r.Context(), q.Get("authorId"), service.ParseSortOrder(q.Get("sort")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]chirpysdk.Chirp, 0, len(chirps))
	for _, c := range chirps {
		out = append(out, toChirp(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet fetches one chirp.
//
//	@Summary		Get chirp
//	@Tags			Chirps
//	@Produce		json
//	@Param			chirpID	path		string	true	"Chirp ID"
//	@Success		200		{object}	chirpysdk.Chirp
//	@Failure		404		{object}	chirpysdk.ErrorResponse
//	@Router			/api/chirps/{chirpID} [get].
func (h *ChirpsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	chirp, err := h.ChirpService.Get(r.Context(), r.PathValue("chirpID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toChirp(chirp))
}

// HandleDelete deletes one of the caller's chirps.
//
//	@Summary		Delete chirp
//	@Tags			Chirps
//	@Security		BearerAuth
//	@Param			chirpID	path	string	true	"Chirp ID"
//	@Success		204
//	@Failure		401	{object}	chirpysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	chirpysdk.ErrorResponse	"Not the author"
//	@Failure		404	{object}	chirpysdk.ErrorResponse
//	@Router			/api/chirps/{chirpID} [delete].
func (h *ChirpsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}

	if err := h.ChirpService.Delete(r.Context(), userID, r.PathValue("chirpID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleValidate cleans a chirp body without storing it.
//
//	@Summary		Validate chirp
//	@Tags			Chirps
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chirpysdk.ChirpRequest	true	"Chirp body"
//	@Success		200		{object}	chirpysdk.ValidateChirpResponse
//	@Failure		400		{object}	chirpysdk.ErrorResponse	"Empty or too long"
//	@Router			/api/validate_chirp [post].
func (h *ChirpsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req chirpysdk.ChirpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	cleaned, err := service.CleanChirp(req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, chirpysdk.ValidateChirpResponse{CleanedBody: cleaned})
}
