package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/taskhub/auth"
	"github.com/upb/taskhub/config"
	"github.com/upb/taskhub/firebase"
	"github.com/upb/taskhub/handlers"
	"github.com/upb/taskhub/internal/observability"
	"github.com/upb/taskhub/middleware"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/repositories/postgres"
	"github.com/upb/taskhub/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repos     *repositories.Repositories
	TxManager repositories.TransactionManager

	// Auth
	Verifier       auth.TokenVerifier
	Guard          *auth.Guard
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	Users         *services.UserService
	Workspaces    *services.WorkspaceService
	Projects      *services.ProjectService
	Tasks         *services.TaskService
	Notifications *services.NotificationService
	Activity      *services.ActivityService

	// HTTP handlers
	HealthHandler       *handlers.HealthHandler
	UserHandler         *handlers.UserHandler
	WorkspaceHandler    *handlers.WorkspaceHandler
	ProjectHandler      *handlers.ProjectHandler
	TaskHandler         *handlers.TaskHandler
	NotificationHandler *handlers.NotificationHandler

	shutdownTracing observability.ShutdownFunc
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	verifier, err := firebase.NewVerifier(firebase.Config{
		ProjectID:       cfg.Firebase.ProjectID,
		JWKSURL:         cfg.Firebase.JWKSURL,
		RefreshInterval: cfg.Firebase.JWKSRefresh,
		ClockSkew:       cfg.Firebase.ClockSkew,
		HTTPTimeout:     cfg.Firebase.JWKSHTTPTimeout,
	})
	if err != nil {
		_ = factory.Close()
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("failed to initialize firebase verifier: %w", err)
	}

	deps := newDependencies(cfg, factory, verifier, logger)
	deps.shutdownTracing = shutdownTracing

	logger.Info("all dependencies initialized successfully",
		zap.String("environment", cfg.Environment),
		zap.String("firebase_project", cfg.Firebase.ProjectID))
	return deps, nil
}

// NewDependenciesWithDB wires the application over an existing pool and verifier.
// Tests and the admin CLI use it to skip network setup.
func NewDependenciesWithDB(cfg *config.Config, db *postgres.DB, verifier auth.TokenVerifier, logger *zap.Logger) *Dependencies {
	return newDependencies(cfg, postgres.NewRepositoryFactoryFromDB(db, logger), verifier, logger)
}

func newDependencies(cfg *config.Config, factory *postgres.RepositoryFactory, verifier auth.TokenVerifier, logger *zap.Logger) *Dependencies {
	d := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
		Verifier:    verifier,
	}
	d.initRepositories()
	d.initAuth()
	d.initServices()
	d.initHandlers()
	return d
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	d.Repos = d.RepoFactory.NewRepositories()
	d.TxManager = d.RepoFactory.GetTransactionManager()
}

func (d *Dependencies) initAuth() {
	d.Guard = auth.NewGuard(d.Verifier, auth.NewStoreResolver(d.Repos.Users), auth.GuardConfig{
		VerifyTimeout: d.Config.Auth.VerifyTimeout,
		LookupTimeout: d.Config.Auth.LookupTimeout,
	})
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Guard, d.Logger)
}

func (d *Dependencies) initServices() {
	r := d.Repos
	d.Activity = services.NewActivityService(r.Activity, r.Workspaces, d.Logger)
	d.Users = services.NewUserService(r.Users, d.Logger)
	d.Workspaces = services.NewWorkspaceService(r.Workspaces, r.Users, d.TxManager, d.Activity, d.Logger)
	d.Projects = services.NewProjectService(r.Projects, r.Boards, r.Workspaces, d.Activity, d.Logger)
	d.Tasks = services.NewTaskService(services.TaskServiceDeps{
		Tasks:         r.Tasks,
		Boards:        r.Boards,
		Projects:      r.Projects,
		Comments:      r.Comments,
		Notifications: r.Notifications,
		Workspaces:    r.Workspaces,
		TxMgr:         d.TxManager,
	}, d.Activity, d.Logger)
	d.Notifications = services.NewNotificationService(r.Notifications, d.Logger)
}

func (d *Dependencies) initHandlers() {
	d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.Users, d.Logger)
	d.WorkspaceHandler = handlers.NewWorkspaceHandler(d.Workspaces, d.Activity, d.Logger)
	d.ProjectHandler = handlers.NewProjectHandler(d.Projects, d.Logger)
	d.TaskHandler = handlers.NewTaskHandler(d.Tasks, d.Logger)
	d.NotificationHandler = handlers.NewNotificationHandler(d.Notifications, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Stop the key set refresher
	if closer, ok := d.Verifier.(interface{ Close() }); ok {
		closer.Close()
	}

	if d.shutdownTracing != nil {
		if err := d.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	return errors.Join(errs...)
}
