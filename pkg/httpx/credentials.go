package httpx

import (
	"errors"
	"net/http"
	"strings"
)

// ErrMissingCredential means the Authorization header is absent or does not
// carry a value for the expected scheme.
var ErrMissingCredential = errors.New("httpx: missing credential")

// ExtractBearer returns the token from "Authorization: Bearer <token>".
func ExtractBearer(h http.Header) (string, error) {
	return extractScheme(h, "Bearer")
}

// ExtractAPIKey returns the key from "Authorization: ApiKey <key>", the
// scheme webhook senders use.
func ExtractAPIKey(h http.Header) (string, error) {
	return extractScheme(h, "ApiKey")
}

// extractScheme accepts exactly "<scheme> <value>": the scheme compared
// case-insensitively, one space, and a non-empty value without spaces.
func extractScheme(h http.Header, scheme string) (string, error) {
	authz := h.Get("Authorization")
	if authz == "" {
		return "", ErrMissingCredential
	}

	got, value, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(got, scheme) {
		return "", ErrMissingCredential
	}
	if value == "" || strings.ContainsAny(value, " \t") {
		return "", ErrMissingCredential
	}

	return value, nil
}
