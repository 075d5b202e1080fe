package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/chirpy/pkg/jwtx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer access token. Every failure gets
// the same 401 body; the reason only goes to the log.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, err := ExtractBearer(r.Header)
			if err != nil {
				WriteUnauthorized(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Info("access token rejected", "err", err)
				WriteUnauthorized(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteUnauthorized writes the single 401 response used for every
// authentication failure (RFC 6750 challenge plus a JSON body).
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "Unauthorized")
}
