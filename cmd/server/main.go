package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/agence-immo/internal/config"
	"github.com/diewo77/agence-immo/internal/db"
	"github.com/diewo77/agence-immo/internal/logging"
	"github.com/diewo77/agence-immo/internal/policy"
	"github.com/diewo77/agence-immo/internal/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and column reconciliation, then exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Create the bootstrap admin account, then exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	dbConn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	if *migrateOnlyFlag {
		if err := migrateSchema(dbConn); err != nil {
			log.Fatalw("migration failed", "error", err)
		}
		log.Info("migrations completed successfully")
		return
	}

	if *seedOnlyFlag {
		if err := seed(context.Background(), dbConn, cfg.Bootstrap); err != nil {
			log.Fatalw("seeding failed", "error", err)
		}
		log.Info("seeding completed successfully")
		return
	}

	// Startup work must finish before the first request is served.
	if err := bootstrap(context.Background(), dbConn, cfg); err != nil {
		log.Fatalw("startup failed", "error", err)
	}

	routerCfg := policy.NewRouterConfig(dbConn)
	appHandler := NewApp(dbConn, cfg, routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      appHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port, "env", cfg.App.Env, "cors_origins", cfg.CORS.AllowedOrigins)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}
	log.Info("server stopped gracefully")
}

// bootstrap migrates the schema, reconciles legacy tables and ensures the
// bootstrap admin exists.
func bootstrap(ctx context.Context, gdb *gorm.DB, cfg *config.Config) error {
	if err := migrateSchema(gdb); err != nil {
		return err
	}
	return seed(ctx, gdb, cfg.Bootstrap)
}

func migrateSchema(gdb *gorm.DB) error {
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	added, err := db.Reconcile(gdb)
	if err != nil {
		return err
	}
	zap.S().Infow("schema reconciled", "columns_added", len(added))
	return nil
}

func seed(ctx context.Context, gdb *gorm.DB, bc config.BootstrapConfig) error {
	_, err := services.NewSessionService(gdb).EnsureDefaultAdmin(ctx, bc.AdminEmail, bc.AdminPassword)
	return err
}
