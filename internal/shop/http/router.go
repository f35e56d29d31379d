package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/pkg/httpx"
	"github.com/cheapdeals/shop/pkg/jwtx"
	"github.com/cheapdeals/shop/pkg/slogx"

	_ "github.com/cheapdeals/shop/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits groups the profiles the router applies per endpoint class.
// Exposed so in-process tests can relax them.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier      jwtx.Verifier
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger
	secureCookies bool

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	CatalogService *service.CatalogService

	Limits RateLimits
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	secureCookies bool,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		verifier:      verifier,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
		secureCookies: secureCookies,
		Limits: RateLimits{
			Strict:   httpx.StrictLimit,
			Moderate: httpx.ModerateLimit,
			Public:   httpx.PublicLimit,
		},
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUser()
	r.registerProducts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Cheap Deals Shop API
//	@version		0.1.0
//	@description	E-commerce backend for phone, package and bundle deals with
//	@description	email-verified accounts and a rotating refresh token session model.
//	@description	All tokens are HS256 JWTs; access and refresh tokens use separate secrets.
//
///	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints get the strict profile (brute force prevention).
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.Limits.Strict),
		))

	r.Mux.Handle("POST /auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies},
			httpx.RateLimitByIP(r.Limits.Strict),
		))

	r.Mux.Handle("POST /auth/forgot-password",
		httpx.Chain(&ForgotPasswordHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.Limits.Strict),
		))

	r.Mux.Handle("POST /auth/refresh-token",
		httpx.Chain(&RefreshHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies},
			httpx.RateLimitByIP(r.Limits.Moderate),
		))

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(&LogoutHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies},
			httpx.RateLimitByIP(r.Limits.Moderate),
		))

	r.Mux.Handle("POST /auth/send-email",
		httpx.Chain(&SendEmailHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.Limits.Moderate),
		))

	r.Mux.Handle("GET /auth/verify-email",
		httpx.Chain(&VerifyEmailHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.Limits.Moderate),
		))

	r.Mux.Handle("GET /auth/verify-password",
		httpx.Chain(&VerifyResetHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.Limits.Moderate),
		))

	r.Mux.Handle("POST /auth/new-password",
		httpx.Chain(&NewPasswordHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.Limits.Strict),
		))
}

func (r *Router) registerUser() {
	r.Mux.Handle("GET /user/me",
		httpx.Chain(&UserInfoHandler{UserService: r.UserService},
			httpx.AuthnMiddleware(r.verifier, cookieAccessToken),
			httpx.RateLimitByUser(r.Limits.Moderate),
		))
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("GET /products",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(r.Limits.Public),
		))

	r.Mux.Handle("GET /products/{productType}/{productID}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.Limits.Public),
		))

	// Catalog writes require an authenticated caller.
	r.Mux.Handle("POST /products/phone",
		httpx.Chain(http.HandlerFunc(h.HandleCreatePhone),
			httpx.AuthnMiddleware(r.verifier, cookieAccessToken),
			httpx.RateLimitByUser(r.Limits.Moderate),
		))

	r.Mux.Handle("POST /products/package",
		httpx.Chain(http.HandlerFunc(h.HandleCreatePackage),
			httpx.AuthnMiddleware(r.verifier, cookieAccessToken),
			httpx.RateLimitByUser(r.Limits.Moderate),
		))

	r.Mux.Handle("POST /products/bundle",
		httpx.Chain(http.HandlerFunc(h.HandleCreateBundle),
			httpx.AuthnMiddleware(r.verifier, cookieAccessToken),
			httpx.RateLimitByUser(r.Limits.Moderate),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
