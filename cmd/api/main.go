package main

import (
	"net/http"
	"os"
	"time"

	"place-history/internal/adapters/storage/postgres"
	"place-history/internal/adapters/weather/openmeteo"
	"place-history/internal/config"
	"place-history/internal/platform/logger"
	"place-history/internal/router"
)

// @title Place History API
// @version 1.0
// @description Lugares visitados y favoritos por cliente, con categorías y clima actual.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{Logger: log}

	if cfg.DatabaseDSN != "" {
		if cfg.MigrationsDir != "" {
			if err := postgres.Migrate(cfg.MigrationsDir, cfg.DatabaseDSN); err != nil {
				log.Error("migrations failed", map[string]any{"error": err.Error()})
				os.Exit(1)
			}
		}

		db, err := postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("db open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	}

	provider, err := openmeteo.NewClient(openmeteo.Config{
		BaseURL: cfg.WeatherBaseURL,
		Timeout: cfg.WeatherTimeout,
	})
	if err != nil {
		// Sin provider el endpoint de clima responde weather: null.
		log.Warn("weather provider disabled", map[string]any{"error": err.Error()})
	} else {
		opts.WeatherProvider = provider
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Address})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
