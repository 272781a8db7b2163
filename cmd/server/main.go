package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharmasatrya/awardsearch/internal/aggregator"
	"github.com/dharmasatrya/awardsearch/internal/cache"
	"github.com/dharmasatrya/awardsearch/internal/config"
	"github.com/dharmasatrya/awardsearch/internal/handler"
	"github.com/dharmasatrya/awardsearch/internal/observability"
	"github.com/dharmasatrya/awardsearch/internal/providers"
	"github.com/dharmasatrya/awardsearch/internal/ratelimit"
	"github.com/dharmasatrya/awardsearch/pkg/currency"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RatesFile != "" {
		rates, err := currency.LoadRatesFile(cfg.RatesFile)
		if err != nil {
			log.Fatalf("Failed to load rate table: %v", err)
		}
		currency.SetDefaultRates(rates)
		log.Printf("Loaded currency rates from %s", cfg.RatesFile)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewCollector(registry)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	providerList, err := initializeProviders(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize providers: %v", err)
	}
	log.Printf("Initialized %d award providers (mode: %s)", len(providerList), cfg.ProviderMode)

	rateLimiter := ratelimit.New(cfg.DefaultLimit)
	for _, p := range cfg.Providers {
		rateLimiter.Configure(p.Name, p.RateLimit)
	}

	var awardCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		awardCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		awardCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}
	defer awardCache.Close()

	agg := aggregator.NewAggregator(providerList, aggregator.Config{
		Timeout:     cfg.FetchTimeout,
		MaxRetries:  cfg.MaxRetries,
		RetryDelays: cfg.RetryDelays,
		RateLimiter: rateLimiter,
		Cache:       awardCache,
		Metrics:     metrics,
	})

	awardHandler := handler.NewAwardHandler(agg, cfg.PerMileValue, metrics)

	api := e.Group("/api/v1")
	api.POST("/awards/evaluate", awardHandler.Evaluate)
	api.POST("/awards/mileage-programs", awardHandler.MileagePrograms)
	api.POST("/itineraries/codeshares", awardHandler.CodeShares)
	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Gatherer(), promhttp.HandlerOpts{})))

	log.Printf("Starting award evaluation server on port %s (per-mile value %.4f)", cfg.Port, cfg.PerMileValue)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initializeProviders(cfg config.Config) ([]providers.Provider, error) {
	if cfg.ProviderMode == config.ProviderModeHTTP {
		providerList := make([]providers.Provider, 0, len(cfg.Providers))
		for _, pc := range cfg.Providers {
			p, err := providers.NewHTTPProvider(providers.HTTPConfig{
				Name:     pc.Name,
				BaseURL:  pc.BaseURL,
				APIKey:   os.Getenv(pc.APIKeyEnv),
				Carriers: pc.Carriers,
				Timeout:  cfg.FetchTimeout,
			})
			if err != nil {
				return nil, err
			}
			providerList = append(providerList, p)
		}
		return providerList, nil
	}

	staticCfg := providers.StaticConfig{
		MinDelay:    50 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		FailureRate: cfg.StaticFailRate,
	}

	direct, err := providers.NewAwardDirectProvider(staticCfg)
	if err != nil {
		return nil, err
	}

	legacy, err := providers.NewMileageLegacyProvider(staticCfg)
	if err != nil {
		return nil, err
	}

	return []providers.Provider{direct, legacy}, nil
}
