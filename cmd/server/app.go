package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lindenshop/storefront-api/internal/config"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/platform/postgres"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	roleStore        store.RoleStore
	customerStore    store.CustomerStore
	addressStore     store.AddressStore
	bankAccountStore store.BankAccountStore
	connectionStore  store.SocialConnectionStore

	locales    *i18n.Locales
	translator *i18n.Translator

	jwtService auth.JWTService

	accountService  service.AccountService
	userService     service.UserService
	customerService service.CustomerService
	roleService     service.RoleService
}

// newApplication wires stores, services and supporting infrastructure.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	locales, err := i18n.NewLocales(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to build locale negotiator: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	roleStore := postgres.NewPostgresRoleStore(db, logger)
	customerStore := postgres.NewPostgresCustomerStore(db, logger)
	addressStore := postgres.NewPostgresAddressStore(db, logger)
	bankAccountStore := postgres.NewPostgresBankAccountStore(db, logger)
	connectionStore := postgres.NewPostgresSocialConnectionStore(db, logger)
	translationStore := postgres.NewPostgresTranslationStore(db, logger)

	translator := i18n.NewTranslator(translationStore, locales, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()
	emailSender := service.NewLogEmailSender(logger)

	app := &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		roleStore:        roleStore,
		customerStore:    customerStore,
		addressStore:     addressStore,
		bankAccountStore: bankAccountStore,
		connectionStore:  connectionStore,
		locales:          locales,
		translator:       translator,
		jwtService:       jwtService,
		accountService: service.NewAccountService(
			userStore, customerStore, addressStore,
			jwtService, hasher, verifier, emailSender, db, logger),
		userService:     service.NewUserService(userStore, hasher, db, logger),
		customerService: service.NewCustomerService(customerStore, addressStore, translator, db, logger),
		roleService:     service.NewRoleService(roleStore, translator, db, logger),
	}

	return app, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("failed to close database", "error", err)
		}
	}
}
