package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/auth"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/config"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/middleware"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories/memory"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories/mongo"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories/postgres"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services/identity"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services/principal"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/session"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger
	Store  repositories.Store

	// Repositories
	Accounts repositories.AccountRepository
	Tasks    repositories.TaskRepository

	// Auth
	Resolver       *principal.Resolver
	Sessions       *session.Manager
	AuthMiddleware *middleware.AuthMiddleware
	authHandler    *auth.Handler
}

// AuthHandler returns the auth handler for route wiring (implements handlers.AuthDeps)
func (d *Dependencies) AuthHandler() *auth.Handler {
	return d.authHandler
}

// NewDependencies opens the configured store and wires up all application
// dependencies against the LinkedIn provider.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	deps, err := Assemble(cfg, logger, store, identity.NewLinkedIn(cfg.LinkedIn, logger))
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	if cfg.Store.SeedTasks {
		if err := deps.Tasks.Seed(ctx, models.SampleTasks()); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to seed tasks: %w", err)
		}
		logger.Info("sample tasks seeded")
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Assemble wires dependencies around an already opened store and provider.
func Assemble(cfg *config.Config, logger *zap.Logger, store repositories.Store, provider identity.Provider) (*Dependencies, error) {
	repos := store.Repositories()
	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Accounts: repos.Accounts,
		Tasks:    repos.Tasks,
	}

	sessions, err := session.NewManager(session.Options{
		Name:   cfg.Session.Name,
		Secret: cfg.Session.Secret,
		MaxAge: int(cfg.Session.MaxAge.Seconds()),
		Secure: cfg.SecureCookies(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	deps.Sessions = sessions
	deps.Resolver = principal.NewResolver(repos.Accounts, cfg.Store.Timeout, logger)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.Resolver, sessions, logger)
	deps.authHandler = auth.NewHandler(cfg, provider, deps.Resolver, sessions, logger)

	return deps, nil
}

// OpenStore opens the backend selected by the STORE_URL scheme.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.Store, error) {
	backend, err := cfg.Store.Backend()
	if err != nil {
		return nil, err
	}

	var store repositories.Store
	switch backend {
	case config.StorePostgres:
		store, err = postgres.Open(ctx, cfg.Store, logger)
	case config.StoreMongo:
		store, err = mongo.Open(ctx, cfg.Store, logger)
	default:
		store = memory.NewStore()
	}
	if err != nil {
		return nil, err
	}

	logger.Info("store connection established",
		zap.String("backend", backend),
		zap.String("connection", cfg.Store.LogString()))
	return store, nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Store != nil {
		if err := d.Store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		} else {
			d.Logger.Info("store connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
