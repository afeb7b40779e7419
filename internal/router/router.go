package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "invonest/docs" // registers the OpenAPI spec served under /swagger
	"invonest/internal/config"
	"invonest/internal/handler"
	"invonest/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *zap.Logger,
	invoiceH *handler.InvoiceHandler,
	referenceH *handler.ReferenceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
		v1.Use(limiter.Middleware())
	}

	invoices := v1.Group("/invoices")
	invoices.POST("/calculate", invoiceH.Calculate)
	invoices.POST("/calculate/export", invoiceH.Export)
	invoices.POST("/verify", invoiceH.Verify)
	invoices.GET("/rules", invoiceH.Rules)

	v1.GET("/hsn/:code", referenceH.HSNRates)
	v1.GET("/states", referenceH.States)

	return r
}
