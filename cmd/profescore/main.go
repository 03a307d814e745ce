package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/config"
	"github.com/profescore/web/internal/database"
	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/ledger"
	"github.com/profescore/web/internal/limiter"
	"github.com/profescore/web/internal/logger"
	"github.com/profescore/web/internal/profescore"
	"github.com/profescore/web/internal/server"
)

const sweepInterval = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "profescore: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	defer log.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := server.Deps{
		API:    profescore.NewClient(cfg.API.BaseURL, cfg.API.Timeout),
		Ledger: ledger.Nop{},
	}

	if cfg.Database.Driver != "" {
		db, err := database.New(cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.DB = db
		deps.Ledger = ledger.New(db.GetDB())
	}

	if cfg.Fingerprint.Enabled {
		httpClient := &http.Client{Timeout: cfg.API.Timeout}
		deps.Fingerprint = identity.NewEnhancedResolver(
			identity.NewHTTPIPLookup(cfg.Fingerprint.IPLookupURL, httpClient),
			identity.NewHTTPFingerprinter(cfg.Fingerprint.ProviderURL, cfg.Fingerprint.APIKey, httpClient),
		)
		log.Info("Fingerprint check enabled", zap.String("provider", cfg.Fingerprint.ProviderURL))
	}

	deps.Limiter = limiter.New(log, cfg.RateLimit.Limit, cfg.RateLimit.Burst)
	stop := make(chan struct{})
	defer close(stop)
	go deps.Limiter.Run(sweepInterval, stop)

	srv := server.NewServer(cfg, log, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("api", cfg.API.BaseURL),
			zap.String("env", cfg.Server.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
