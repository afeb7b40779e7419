// @title InvoNest API
// @version 1.0
// @description GST invoice calculation, verification and export.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"invonest/internal/config"
	"invonest/internal/handler"
	"invonest/internal/hsn"
	"invonest/internal/logger"
	"invonest/internal/port"
	"invonest/internal/repository/postgres"
	"invonest/internal/router"
	"invonest/internal/service"
	"invonest/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a database the calculator still works; every line item must
	// then carry its own tax rate.
	var (
		hsnRepo  port.HSNRepository
		lookup   *hsn.Lookup
		resolver port.RateResolver
	)
	if cfg.HSN.Source == "postgres" {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		hsnRepo = postgres.NewHSNRepo(db)
		lookup, err = hsn.Load(ctx, hsnRepo, zl)
		if err != nil {
			return err
		}
		resolver = lookup
	} else {
		zl.Warn("HSN master disabled; tax rates must be supplied per line item")
	}

	// Initialize services
	engine := validator.NewBuiltinEngine(lookup, zl)
	invoiceSvc := service.NewInvoiceService(resolver, lookup, engine, cfg.Server.MaxLineItems, zl)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	referenceH := handler.NewReferenceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(hsnRepo)

	// Setup router
	r := router.Setup(cfg, zl, invoiceH, referenceH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.Int("rules", len(engine.Rules())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
