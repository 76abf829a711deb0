/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the BS interest calculator server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (defaults, YAML file, BSINTEREST_* environment)
  3. Build the logger
  4. Open the key-value store and load saved calculations
  5. Create API handler and router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config     YAML config file (default: config.yaml, optional)
  -log-level  Overrides logging.level
  -addr       Overrides server.address

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

EXAMPLES:
  # Run with the default SQLite file
  ./server

  # Keep saved calculations in memory only
  BSINTEREST_STORE_BACKEND=memory ./server

  # Use Redis on another port
  BSINTEREST_STORE_BACKEND=redis ./server -addr=:3000

SEE ALSO:
  - config/config.go: Configuration keys and defaults
  - api/server.go: Router configuration
  - saved/repository.go: Saved calculations
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/sambat-interest/api"
	"github.com/warp/sambat-interest/config"
	"github.com/warp/sambat-interest/saved"
	"github.com/warp/sambat-interest/store/memory"
	"github.com/warp/sambat-interest/store/redis"
	"github.com/warp/sambat-interest/store/sqlite"
	"go.uber.org/zap"
)

// store is a KV backend that holds a resource.
type store interface {
	saved.KV
	Close() error
}

func main() {
	// Flags
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	addr := flag.String("addr", "", "override server.address")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		conf.Server.Address = *addr
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize store
	kv, err := openStore(context.Background(), conf.Store)
	if err != nil {
		logger.Fatal("failed to initialize store",
			zap.String("op", "main"),
			zap.String("backend", conf.Store.Backend),
			zap.Error(err),
		)
	}
	defer kv.Close()

	repo := saved.NewRepository(kv, conf.Store.Key, logger)
	if err := repo.Load(context.Background()); err != nil {
		logger.Fatal("failed to load saved calculations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := api.NewHandler(repo, logger)
	router := api.NewRouter(handler, conf.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         conf.Server.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.String("address", conf.Server.Address),
			zap.String("backend", conf.Store.Backend),
			zap.Int("saved_calculations", len(repo.List())),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}

func openStore(ctx context.Context, c config.StoreConfig) (store, error) {
	switch c.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		return sqlite.New(c.SQLite.Path)
	case config.BackendRedis:
		return redis.New(ctx, redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Backend)
	}
}
