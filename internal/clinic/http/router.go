// Package http wires the clinic services to their REST surface.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/service"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/httpx"
	"github.com/medranosoft/citamed/pkg/jwtx"
	"github.com/medranosoft/citamed/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	UserService        *service.UserService
	AppointmentService *service.AppointmentService
	AdminService       *service.AdminService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCitas()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{UserService: r.UserService}

	// All three endpoints take credentials, so they share the strict
	// IP-based limit to slow down brute force and enumeration.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerCitas() {
	h := &CitasHandler{
		AppointmentService: r.AppointmentService,
		UserService:        r.UserService,
	}

	securedRead := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	securedWrite := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /citas/medicos", securedRead(h.HandleDoctors))
	r.Mux.Handle("GET /citas/mis-citas", securedRead(h.HandleMine))
	r.Mux.Handle("GET /citas/me", securedRead(h.HandleMe))
	r.Mux.Handle("POST /citas/crear", securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /citas/cancelar/{id}", securedWrite(h.HandleCancel))
}

func (r *Router) registerUsers() {
	h := &MeHandler{UserService: r.UserService}

	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /users/me", secured)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /admin/citas", secured(h.HandleListCitas))
	r.Mux.Handle("PUT /admin/citas/{id}/estado", secured(h.HandleSetStatus))
	r.Mux.Handle("GET /admin/usuarios", secured(h.HandleListUsers))
	r.Mux.Handle("PUT /admin/usuario/{id}/rol", secured(h.HandleSetRole))
	r.Mux.Handle("DELETE /admin/usuario/{id}", secured(h.HandleDeleteUser))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
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
