package handlers

import (
	"log/slog"

	"github.com/SscSPs/travel_allowance_app/cmd/docs"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/SscSPs/travel_allowance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	RegisterValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	var previewMiddleware []gin.HandlerFunc
	if cfg.PreviewRateLimit != "" {
		previewLimiter, err := middleware.NewMemoryLimiter(cfg.PreviewRateLimit)
		if err != nil {
			return err
		}
		previewMiddleware = append(previewMiddleware, middleware.RateLimit(previewLimiter))
	} else {
		slog.Warn("Preview rate limiting disabled")
	}

	// Delegate route registration to specific handlers, passing required services
	RegisterCalculationRoutes(v1, service.Calculation, previewMiddleware...)
	RegisterRequestRoutes(v1, service.Request, service.Workflow, service.Document)
	RegisterParametersRoutes(v1, service.Parameters)
	RegisterUserRoutes(v1, service.User)
	RegisterHolidayRoutes(v1, service.Holiday)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
