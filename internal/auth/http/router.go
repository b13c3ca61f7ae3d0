package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatehouse-auth/gatehouse/internal/auth/service"
	"github.com/gatehouse-auth/gatehouse/internal/auth/store"
	"github.com/gatehouse-auth/gatehouse/pkg/httpx"
	"github.com/gatehouse-auth/gatehouse/pkg/jwtx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	accessVerifier jwtx.Verifier
	buildVersion   string
	startTime      time.Time
	logger         *slog.Logger

	store        store.Store
	TokenService *service.TokenService
	UserService  *service.UserService
}

func NewRouter(
	accessVerifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		accessVerifier: accessVerifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		logger:         logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccount()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /api/register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/register",
		httpx.Chain(&RegisterHandler{UserService: r.UserService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{UserService: r.UserService, TokenService: r.TokenService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/refresh-token - strict rate limit by IP
	r.Mux.Handle("POST /api/refresh-token",
		httpx.Chain(&RefreshHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/logout - moderate rate limit by IP
	r.Mux.Handle("POST /api/logout",
		httpx.Chain(&LogoutHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccount() {
	// GET /api/profile - authenticated, lenient rate limit by user
	r.Mux.Handle("GET /api/profile",
		httpx.Chain(&ProfileHandler{},
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// DELETE /api/user - authenticated, moderate rate limit by user
	r.Mux.Handle("DELETE /api/user",
		httpx.Chain(&DeleteAccountHandler{UserService: r.UserService},
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems poll)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
