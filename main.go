package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartsheetsvc/adapters/cache"
	"smartsheetsvc/adapters/smartsheet"
	"smartsheetsvc/app"
	"smartsheetsvc/internal"
	"smartsheetsvc/internal/api"
	"smartsheetsvc/internal/config"
	"smartsheetsvc/internal/opsserver"
	"smartsheetsvc/ports"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// openCacheStore picks the SQL store when CACHE_DATABASE_URL is set and the
// in-memory store otherwise.
func openCacheStore(ctx context.Context, appConfig *config.Config, logger *internal.Logger) (ports.CacheStore, error) {
	if appConfig.Cache.DatabaseURL == "" {
		logger.Info("Using in-memory sheet cache (ttl %s)", appConfig.Cache.TTL)
		return cache.NewMemoryStore(), nil
	}
	store, err := cache.OpenSQLStore(ctx, appConfig.Cache.DatabaseURL)
	if err != nil {
		return nil, err
	}
	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("Using SQL sheet cache (ttl %s, purged %d expired entries)", appConfig.Cache.TTL, purged)
	return store, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(appConfig.LogLevel)
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openCacheStore(ctx, appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to open sheet cache: %v", err)
	}
	defer store.Close()

	client := smartsheet.NewClient(smartsheet.Config{
		BaseURL:        appConfig.Smartsheet.BaseURL,
		AccessToken:    appConfig.Smartsheet.AccessToken,
		UserAgent:      appConfig.Smartsheet.UserAgent,
		MaxConnections: appConfig.Smartsheet.MaxConnections,
		Timeout:        appConfig.Smartsheet.Timeout,
	}, logger)
	fetcher := cache.NewCachedFetcher(client, store, appConfig.Cache.TTL, logger)

	service := app.NewSheetService(fetcher, app.SheetIDs{
		Funding:    appConfig.Smartsheet.FundingID,
		Protocols:  appConfig.Smartsheet.ProtocolsID,
		Perfusions: appConfig.Smartsheet.PerfusionsID,
	}, appConfig.Smartsheet.Strict, logger)

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			logger.Info("Ops server starting on :%s (/healthz, /debug/pprof)", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, opsserver.NewRouter()); err != nil {
				logger.Error("ops server failed: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           api.NewServer(service, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting smartsheet service %s on port %s", internal.Version, appConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed: %v", err)
	}
}
