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

	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/film-catalog-api/configs"
	"github.com/avatarctic/film-catalog-api/internal/application/services"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/codec"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/elastic"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/health"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/localcache"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/redis"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/repositories"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting film catalog API...")

	shutdownTracing, err := tracing.Setup(&cfg.Tracing, nil)
	if err != nil {
		logger.Fatal("Failed to initialize tracing:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.WithError(err).Warn("Failed to flush traces")
		}
	}()

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Initialize Elasticsearch client
	esClient, err := elastic.NewElasticClient(&cfg.Elastic)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch:", err)
	}

	logger.WithField("addresses", cfg.Elastic.Addresses).Info("Connected to Elasticsearch successfully")

	cacheCodec, err := codec.New(cfg.Cache.Codec)
	if err != nil {
		logger.Fatal("Failed to select cache codec:", err)
	}

	// Shared item cache, optionally fronted by an in-process tier
	var itemCache ports.Cache = redis.NewRedisCache(redisClient, cfg.Cache.KeyPrefix, cfg.Cache.OpTimeout)
	if cfg.Cache.LocalEnabled {
		local, err := localcache.NewLocal(cfg.Cache.LocalMaxCost)
		if err != nil {
			logger.Fatal("Failed to initialize local cache:", err)
		}
		defer local.Close()
		itemCache = localcache.NewTiered(local, itemCache, cfg.Cache.LocalTTL)
		logger.WithField("local_ttl", cfg.Cache.LocalTTL).Info("Local cache tier enabled")
	}

	searchBackend := elastic.NewSearchBackend(esClient, cfg.Elastic.RequestTimeout, logger)

	fetcherDeps := services.FetcherDeps{
		Cache:        itemCache,
		Backend:      searchBackend,
		Codec:        cacheCodec,
		TTL:          cfg.Cache.TTL,
		CacheTimeout: cfg.Cache.OpTimeout,
		Logger:       logger,
	}
	filmService := services.NewFilmService(cfg.Elastic.FilmIndex, fetcherDeps)
	genreService := services.NewGenreService(cfg.Elastic.GenreIndex, fetcherDeps)
	personService := services.NewPersonService(cfg.Elastic.PersonIndex, cfg.Elastic.FilmIndex, fetcherDeps)

	var rateLimiterService ports.RateLimiterService
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &services.RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
			BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         cfg.RateLimit.KeyPrefix,
		}
		rateLimiterService = services.NewRateLimiterService(repositories.NewRateLimitRedisRepository(redisClient), rateLimiterConfig, logger)
	}

	hcSlice := []ports.HealthChecker{health.NewRedisHealthChecker(redisClient), health.NewElasticHealthChecker(esClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}
	apiConfig := httpserver.APIConfig{
		DefaultPageSize:   cfg.API.DefaultPageSize,
		MaxPageSize:       cfg.API.MaxPageSize,
		MaxResultWindow:   cfg.API.MaxResultWindow,
		EmptyListNotFound: cfg.API.EmptyListNotFound,
	}

	deps := httpserver.ServerDeps{
		FilmService:        filmService,
		GenreService:       genreService,
		PersonService:      personService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, apiConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
