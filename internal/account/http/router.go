package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/accounts/api/account" // Swagger docs
	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AccountService  *service.AccountService
	AuthService     *service.AuthService
	ClientService   *service.ClientService
	RecoveryService *service.RecoveryService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerClients()
	r.registerRecovery()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Account Service API
//	@version		0.1.0
//	@description	Development account service for the account SDK. Passwords never leave the client:
//	@description	accounts register salts and Ed25519 public keys derived from them, and log in by signing a server challenge.
//	@description
//	@description				Tokens are signed with EdDSA (Ed25519) and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/accounts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Account token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Rate limited by IP + email to slow down guessing against one account
	r.Mux.Handle("POST /v1/account/challenge",
		httpx.Chain(http.HandlerFunc(h.HandleChallenge),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/account/auth",
		httpx.Chain(http.HandlerFunc(h.HandleAuth),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerProfile() {
	profile := &ProfileHandler{AccountService: r.AccountService}
	meta := &MetaHandler{AccountService: r.AccountService}

	r.Mux.Handle("POST /v1/account/profile",
		httpx.Chain(http.HandlerFunc(profile.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Recovery tokens may rewrite credentials and meta, nothing else
	r.Mux.Handle("PATCH /v1/account/profile",
		httpx.Chain(http.HandlerFunc(profile.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeAccountWrite, service.ScopeAccountRecover),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/account/profile/meta",
		httpx.Chain(http.HandlerFunc(meta.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeAccountRead, service.ScopeAccountRecover),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/account/profile/meta",
		httpx.Chain(http.HandlerFunc(meta.HandlePut),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeAccountWrite, service.ScopeAccountRecover),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	r.Mux.Handle("PATCH /v1/client/{id}/keys",
		httpx.Chain(http.HandlerFunc(h.HandleBackfill),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeAccountWrite),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/account/e3db/clients/queen",
		httpx.Chain(http.HandlerFunc(h.HandleRollQueen),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeAccountWrite, service.ScopeAccountRecover),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRecovery() {
	r.Mux.Handle("POST /v1/account/recover",
		httpx.Chain(&RecoveryHandler{RecoveryService: r.RecoveryService},
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
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
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
