package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/adapters/cache"
	"github.com/SscSPs/travel_allowance_app/internal/adapters/email"
	"github.com/SscSPs/travel_allowance_app/internal/adapters/gdrive"
	"github.com/SscSPs/travel_allowance_app/internal/adapters/maps"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/core/services"
	"github.com/SscSPs/travel_allowance_app/internal/core/workflow"
	"github.com/SscSPs/travel_allowance_app/internal/handlers"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/SscSPs/travel_allowance_app/internal/platform/config"
	"github.com/SscSPs/travel_allowance_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/travel_allowance_app/internal/repositories/memory"
	"github.com/SscSPs/travel_allowance_app/internal/utils"
	pkgcache "github.com/SscSPs/travel_allowance_app/pkg/cache"
	"github.com/SscSPs/travel_allowance_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Travel Allowance API
// @version 1.0
// @description Travel reimbursement requests: per-diem and displacement calculations, approval workflow and audit history.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	collab, closeCollab, err := setupCollaborators(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize collaborators", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeCollab()

	container := services.NewServiceContainer(cfg, repos, collab)
	bootstrapAdministrator(ctx, cfg, container, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// setupStorage opens the configured repository backend and applies migrations for Postgres.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage. Data is lost on restart.")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}

// setupCollaborators builds the outbound adapters. Missing settings select
// local or disabled variants instead of failing startup.
func setupCollaborators(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Collaborators, func(), error) {
	engine, err := workflow.NewDefaultEngine()
	if err != nil {
		return services.Collaborators{}, nil, err
	}
	collab := services.Collaborators{Engine: engine}
	closeFn := func() {}

	if cfg.RedisAddress != "" {
		rdb, err := pkgcache.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			return services.Collaborators{}, nil, err
		}
		collab.ParametersCache = cache.NewRedisParametersCache(rdb, cfg.ParametersCacheTTL)
		collab.Locker = cache.NewRedisLocker(rdb)
		closeFn = func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}
		logger.Info("Redis connection established.")
	} else {
		collab.ParametersCache = cache.NewLocalParametersCache(cfg.ParametersCacheTTL)
		collab.Locker = cache.NewLocalLocker()
	}

	if cfg.GoogleMapsAPIKey != "" {
		provider, err := maps.NewDirectionsDistanceProvider(cfg.GoogleMapsAPIKey, cfg.ExternalCallTimeout)
		if err != nil {
			return services.Collaborators{}, nil, err
		}
		collab.Distance = provider
	} else {
		collab.Distance = maps.UnavailableDistanceProvider{}
	}

	var documents portssvc.DocumentOrchestrator = gdrive.DisabledOrchestrator{}
	if cfg.GoogleServiceAccountFile != "" && cfg.DriveRootFolderID != "" && cfg.DocsTemplateID != "" {
		orchestrator, err := gdrive.NewOrchestrator(ctx, cfg.GoogleServiceAccountFile, cfg.DriveRootFolderID, cfg.DocsTemplateID)
		if err != nil {
			return services.Collaborators{}, nil, err
		}
		documents = orchestrator
	}
	collab.Documents = documents

	if cfg.SMTPHost != "" {
		collab.Sender = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		collab.Sender = email.LogSender{}
	}

	return collab, closeFn, nil
}

// bootstrapAdministrator makes sure a fresh installation has an administrator.
// Outside production it also logs a token for that user.
func bootstrapAdministrator(ctx context.Context, cfg *config.Config, container *portssvc.ServiceContainer, logger *slog.Logger) {
	if cfg.BootstrapAdminID == "" {
		return
	}
	users, ok := container.User.(*services.UserService)
	if !ok {
		return
	}
	admin, err := users.EnsureAdministrator(ctx, cfg.BootstrapAdminID, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail)
	if err != nil {
		logger.Error("Failed to ensure bootstrap administrator", slog.String("error", err.Error()))
		return
	}
	if cfg.IsProduction {
		return
	}
	token, err := utils.GenerateJWT(admin.UserID, cfg.JWTSecret, 24*time.Hour, "tra-backend")
	if err != nil {
		logger.Error("Failed to issue development token", slog.String("error", err.Error()))
		return
	}
	logger.Info("Development token for bootstrap administrator", slog.String("user_id", admin.UserID), slog.String("token", token))
}

func corsConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction || len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-Request-ID")
	corsConfig.AddExposeHeaders("Content-Length", "X-Request-ID")
	return corsConfig
}
