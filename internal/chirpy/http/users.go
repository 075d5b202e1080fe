package http

import (
	"net/http"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate registers a new account.
//
//	@Summary		Create user
//	@Description	Registers an account with an email and password.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chirpysdk.CredentialsRequest	true	"Email and password"
//	@Success		201		{object}	chirpysdk.User
//	@Failure		400		{object}	chirpysdk.ErrorResponse	"Missing email or password"
//	@Failure		409		{object}	chirpysdk.ErrorResponse	"Email already registered"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req chirpysdk.CredentialsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	profile, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", profile.ID)
	httpx.WriteJSON(w, http.StatusCreated, toUser(profile))
}

// HandleUpdate changes the caller's email and password.
//
//	@Summary		Update user
//	@Description	Replaces the authenticated user's password, and their email when one is given.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chirpysdk.CredentialsRequest	true	"New credentials"
//	@Success		200		{object}	chirpysdk.User
//	@Failure		400		{object}	chirpysdk.ErrorResponse	"Missing password"
//	@Failure		401		{object}	chirpysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		409		{object}	chirpysdk.ErrorResponse	"Email already registered"
//	@Router			/api/users [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}

	var req chirpysdk.CredentialsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	profile, err := h.UserService.UpdateCredentials(r.Context(), userID, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(profile))
}
