package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP exchanges email and password for a token pair.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns the user with an access token and a refresh token.
//	@Description	expiresInSeconds may shorten the access token lifetime but never extend it.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chirpysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	chirpysdk.LoginResponse
//	@Failure		401		{object}	chirpysdk.ErrorResponse	"Incorrect email or password"
//	@Failure		429		{object}	chirpysdk.ErrorResponse	"Too many requests"
//	@Failure		500		{object}	chirpysdk.ErrorResponse	"Session could not be created"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req chirpysdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	ttl := time.Duration(req.ExpiresInSeconds) * time.Second
	session, err := h.SessionService.Login(r.Context(), req.Email, req.Password, ttl)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("login succeeded", "user_id", session.User.ID)
	httpx.WriteJSON(w, http.StatusOK, chirpysdk.LoginResponse{
		User:         toUser(session.User),
		Token:        session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

type RefreshHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP mints a new access token from a refresh token.
//
//	@Summary		Refresh access token
//	@Description	Takes the refresh token as a bearer credential. The refresh token is not rotated.
//	@Tags			Sessions
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer {refreshToken}"
//	@Success		200				{object}	chirpysdk.TokenResponse
//	@Failure		401				{object}	chirpysdk.ErrorResponse	"Unknown, expired or revoked refresh token"
//	@Router			/api/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ExtractBearer(r.Header)
	if err != nil {
		httpx.WriteUnauthorized(w)
		return
	}

	access, err := h.SessionService.Refresh(r.Context(), raw)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, chirpysdk.TokenResponse{Token: access})
}

type RevokeHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP revokes a refresh token.
//
//	@Summary		Revoke refresh token
//	@Description	Always answers 204 once a bearer credential is present, whether or not it matched a live token.
//	@Tags			Sessions
//	@Param			Authorization	header	string	true	"Bearer {refreshToken}"
//	@Success		204
//	@Failure		401	{object}	chirpysdk.ErrorResponse	"No bearer credential"
//	@Router			/api/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ExtractBearer(r.Header)
	if err != nil {
		httpx.WriteUnauthorized(w)
		return
	}

	if err := h.SessionService.Revoke(r.Context(), raw); err != nil {
		slogx.FromContext(r.Context()).Error("revoke refresh token", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
