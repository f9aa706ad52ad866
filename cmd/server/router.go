package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lindenshop/storefront-api/internal/api"
	apiMiddleware "github.com/lindenshop/storefront-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.LocaleMiddleware(app.locales))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)
	loginLimiter := apiMiddleware.NewRateLimiter(
		float64(app.config.Server.LoginRateLimit)/60.0,
		app.config.Server.LoginRateBurst,
	)

	sessionHandler := api.NewSessionHandler(app.accountService, app.locales)
	profileHandler := api.NewProfileHandler(
		app.userService, app.customerStore, app.addressStore, app.jwtService, app.locales)
	customerHandler := api.NewCustomerHandler(app.customerService, app.jwtService, app.locales)
	addressHandler := api.NewAddressHandler(app.customerService, app.addressStore, app.locales)
	roleHandler := api.NewRoleHandler(app.roleService, app.locales)
	bankAccountHandler := api.NewBankAccountHandler(app.bankAccountStore)
	connectionHandler := api.NewConnectionHandler(app.connectionStore)

	r.Route("/accounts", func(r chi.Router) {
		// Sessions: open to anonymous callers; authentication attempts are
		// rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Optional)
			r.Get("/sessions", sessionHandler.Get)
			r.With(loginLimiter.Limit).Post("/sessions", sessionHandler.Create)
			r.With(loginLimiter.Limit).Put("/sessions/{id}", sessionHandler.Update)
			r.Delete("/sessions/{id}", sessionHandler.Delete)
			r.With(loginLimiter.Limit).Post("/sessions/refresh", sessionHandler.Refresh)
		})

		// Profiles: the item GET stays open for the email confirmation
		// token flow; everything else requires login.
		r.With(authMiddleware.Optional).Get("/profiles/{id}", profileHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/profiles", profileHandler.List)
			r.Post("/profiles", profileHandler.Create)
			r.Put("/profiles/{id}", profileHandler.Update)
			r.With(apiMiddleware.RequireAdmin).Delete("/profiles/{id}", profileHandler.Delete)
		})

		// Customers and addresses accept guest tokens.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Optional)
			r.Post("/customers", customerHandler.Create)
			r.Get("/customers", customerHandler.List)
			r.Get("/customers/{id}", customerHandler.Get)
			r.Put("/customers/{id}", customerHandler.Update)
			r.Delete("/customers/{id}", customerHandler.Delete)

			r.Post("/addresses", addressHandler.Create)
			r.Get("/addresses", addressHandler.List)
			r.Get("/addresses/{id}", addressHandler.Get)
			r.Put("/addresses/{id}", addressHandler.Update)
			r.Delete("/addresses/{id}", addressHandler.Delete)
		})

		// Roles, bank accounts and connections require login.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/roles", roleHandler.List)
			r.Get("/roles/{id}", roleHandler.Get)
			r.With(apiMiddleware.RequireAdmin).Post("/roles", roleHandler.Create)
			r.With(apiMiddleware.RequireAdmin).Put("/roles/{id}", roleHandler.Update)
			r.Delete("/roles/{id}", roleHandler.Delete)

			r.Post("/bank_accounts", bankAccountHandler.Create)
			r.Get("/bank_accounts", bankAccountHandler.List)
			r.Get("/bank_accounts/{id}", bankAccountHandler.Get)
			r.Put("/bank_accounts/{id}", bankAccountHandler.Update)
			r.Delete("/bank_accounts/{id}", bankAccountHandler.Delete)

			r.Get("/connections", connectionHandler.List)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
