package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/contentapi"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/repository/state"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	otpsvc "storefront/internal/service/otp"
	sessionsvc "storefront/internal/service/session"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[web] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		pool      *pgxpool.Pool
		stateRepo state.Repository
	)
	if cfg.DBConnString != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		stateRepo = state.NewPostgres(pool, logger)
	} else {
		logger.Printf("DB_DSN not set, visitor state is memory-only")
		stateRepo = state.NewMemory()
	}

	content := contentapi.New(cfg.ContentAPIURL, cfg.ContentBaseURL, cfg.HTTPClientTimeout, logger)
	cartService := cartsvc.New(stateRepo, logger)
	sessionService := sessionsvc.New(stateRepo, logger)
	catalogService := catalogsvc.New(content, logger)
	checkoutService := checkoutsvc.New(content, cartService, logger)
	otpService := otpsvc.New(cfg.ContentBaseURL, cfg.HTTPClientTimeout, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		CartSvc:     cartService,
		SessionSvc:  sessionService,
		CatalogSvc:  catalogService,
		ContentSvc:  content,
		CheckoutSvc: checkoutService,
		OTPSvc:      otpService,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
