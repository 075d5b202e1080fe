package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/jwtx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"

	_ "github.com/aussiebroadwan/chirpy/api/chirpy" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// PlatformDev is the only platform where /admin/reset is allowed.
const PlatformDev = "dev"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	platform     string
	startTime    time.Time
	logger       *slog.Logger
	hits         *httpx.HitCounter

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
	ChirpService   *service.ChirpService

	TokenStore     Pinger // Optional: probed by readyz when refresh tokens live outside the database
	PolkaKey       string
	FileServerRoot string // Optional: /app/ is not mounted when empty
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, platform string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		platform:     platform,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		hits:         &httpx.HitCounter{},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Hits is the file server hit counter shown on /admin/metrics.
func (r *Router) Hits() *httpx.HitCounter { return r.hits }

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSessions()
	r.registerChirps()
	r.registerWebhooks()
	r.registerSystem()
	r.registerAdmin()
	r.registerApp()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Chirpy API
//	@version		0.1.0
//	@description	Short posts ("chirps") with password login, HS256 access tokens and revocable refresh tokens.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/chirpy
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Signup - moderate rate limit by IP
	r.Mux.Handle("POST /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("PUT /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSessions() {
	// Credential checks - strict rate limit by IP
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/refresh",
		httpx.Chain(&RefreshHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/revoke",
		httpx.Chain(&RevokeHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerChirps() {
	h := &ChirpsHandler{ChirpService: r.ChirpService}

	r.Mux.Handle("POST /api/chirps",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /api/chirps/{chirpID}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Public reads
	r.Mux.Handle("GET /api/chirps",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/chirps/{chirpID}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /api/validate_chirp",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerWebhooks() {
	r.Mux.Handle("POST /api/polka/webhooks",
		httpx.Chain(&PolkaWebhookHandler{UserService: r.UserService, APIKey: r.PolkaKey},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health checks - monitoring may poll frequently
	r.Mux.Handle("GET /api/healthz",
		httpx.Chain(HealthzHandler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenStore),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("GET /admin/metrics", MetricsHandler(r.hits))
	r.Mux.Handle("POST /admin/reset",
		httpx.Chain(&ResetHandler{UserService: r.UserService, Hits: r.hits, Platform: r.platform},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerApp() {
	if r.FileServerRoot == "" {
		return
	}
	fs := http.StripPrefix("/app", http.FileServer(http.Dir(r.FileServerRoot)))
	r.Mux.Handle("/app/", httpx.Chain(fs, r.hits.Middleware))
}
