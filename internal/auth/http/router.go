package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/internal/auth/store"
	"github.com/propcheck/inspections/pkg/httpx"
	"github.com/propcheck/inspections/pkg/jwtx"
	"github.com/propcheck/inspections/pkg/slogx"

	_ "github.com/propcheck/inspections/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	verifier     *jwtx.Verifier
	cookies      CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	SessionService   *service.SessionService
	TwoFactorService *service.TwoFactorService
	TOTPService      *service.TOTPService
	SettingsService  *service.SettingsService
}

func NewRouter(
	signer *jwtx.Signer,
	verifier *jwtx.Verifier,
	cookies CookieConfig,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RecoverMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerTOTP()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PropCheck Authentication Service API
//	@version		0.1.0
//	@description	Session authentication for the PropCheck building-inspection platform:
//	@description	credential logins with timed lockout, emailed and authenticator-app
//	@description	two-factor codes, and EdDSA-signed session cookies.
//
//	@contact.name	PropCheck Engineering
//	@contact.url	https://github.com/propcheck/inspections
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{
		AuthService:    r.AuthService,
		SessionService: r.SessionService,
		Cookies:        r.cookies,
	}
	twoFactorHandler := &TwoFactorHandler{
		TwoFactorService: r.TwoFactorService,
	}
	sessionHandler := &SessionHandler{
		SessionService: r.SessionService,
		Verifier:       r.verifier,
		Cookies:        r.cookies,
	}

	// Credential endpoints carry the strict limit: five attempts a minute
	// per IP on top of the per-account lockout.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(loginHandler.Handle),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/2fa/send",
		httpx.Chain(http.HandlerFunc(twoFactorHandler.HandleSend),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(sessionHandler.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(http.HandlerFunc(sessionHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(sessionHandler.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	settingsHandler := &SettingsHandler{
		SettingsService: r.SettingsService,
		Verifier:        r.verifier,
	}

	r.Mux.Handle("POST /v1/auth/force-refresh",
		httpx.Chain(http.HandlerFunc(settingsHandler.HandleForceRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTOTP() {
	totpHandler := &TOTPHandler{
		TOTPService: r.TOTPService,
		Verifier:    r.verifier,
	}

	r.Mux.Handle("POST /v1/auth/totp/enroll",
		httpx.Chain(http.HandlerFunc(totpHandler.HandleEnroll),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/totp/verify",
		httpx.Chain(http.HandlerFunc(totpHandler.HandleVerify),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/totp/remove",
		httpx.Chain(http.HandlerFunc(totpHandler.HandleRemove),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
