package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/revenue_cycle_app/cmd/docs"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/middleware"
	"github.com/SscSPs/revenue_cycle_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dbPing func(ctx context.Context) error,
) {
	if err := RegisterValidators(); err != nil {
		panic(fmt.Sprintf("handlers: %v", err))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		if cfg.EnableDBCheck && dbPing != nil {
			if err := dbPing(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "DB UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerRevenueRoutes(v1, service.Revenue)
	registerCustomerRoutes(v1, service.Customer)
	registerAccountRoutes(v1, service.ChartOfAccounts)
	registerJournalRoutes(v1, service.Journal)
	registerLedgerRoutes(v1, service.Ledger)
	registerReportingRoutes(v1, service.Reporting, service.Audit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
