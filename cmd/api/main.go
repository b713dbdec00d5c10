package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"artgallery/internal/adapter/repo"
	"artgallery/internal/domain"
	"artgallery/internal/gallery"
	"artgallery/internal/generation"
	"artgallery/internal/http/handlers"
	httpapi "artgallery/internal/http/httpapi"
	"artgallery/internal/infra"
	"artgallery/internal/infra/credentials"
	"artgallery/internal/infra/geoip"
	"artgallery/internal/middleware"
	"artgallery/internal/providers/stability"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	var posts domain.PostRepository
	dbpool, err := infra.NewDBPool(ctx, cfg)
	switch {
	case errors.Is(err, infra.ErrNoDatabase):
		logger.Warn().Msg("DATABASE_URL is not set; posts are kept in memory")
		posts = repo.NewMemoryPostRepository()
	case err != nil:
		logger.Fatal().Err(err).Msg("failed to connect database")
	default:
		defer dbpool.Close()
		runner := infra.NewSQLRunner(dbpool, logger)
		posts = repo.NewPostRepository(runner)
		if cfg.StabilityAPIKey == "" {
			key, err := credentials.NewStore(runner).StabilityAPIKey(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to read stored stability api key")
			}
			cfg.StabilityAPIKey = key
		}
	}

	logger.Info().Str("stability_api_key", cfg.MaskedAPIKey()).Msg("configuration loaded")
	if cfg.StabilityAPIKey == "" {
		logger.Warn().Msg("STABILITY_API_KEY is not set; /generate will report a configuration error")
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip database unavailable")
	}
	defer geo.Close()
	var lookup middleware.CountryLookup
	if geo.Enabled() {
		lookup = geo.CountryCode
	}

	provider := stability.NewClient(stability.Options{
		APIKey:         cfg.StabilityAPIKey,
		BaseURL:        cfg.StabilityBaseURL,
		Engine:         cfg.StabilityEngine,
		Logger:         &logger,
		RequestTimeout: cfg.GenerationTimeout,
	})

	app := handlers.NewApp(
		generation.NewProxy(provider, logger),
		gallery.NewService(posts, logger),
		logger,
		cfg.BodyLimitBytes,
	)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		CountryLookup: lookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("engine", provider.Engine()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	// in-flight generations may take a while; give them the provider timeout
	grace := cfg.HTTPIdleTimeout
	if cfg.GenerationTimeout > grace {
		grace = cfg.GenerationTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
