package main

import (
	"log"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/dispatch"
	"github.com/dharmasatrya/tripplanner/internal/handler"
	"github.com/dharmasatrya/tripplanner/internal/planner"
	"github.com/dharmasatrya/tripplanner/internal/providers"
	"github.com/dharmasatrya/tripplanner/internal/ratelimit"
)

func main() {
	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	provider := providers.NewSkySim(providers.SkySimConfig{
		Latency:       cfg.GetDuration("provider.latency"),
		LatencyJitter: cfg.GetDuration("provider.latency_jitter"),
		FailureRate:   cfg.GetFloat64("provider.failure_rate"),
		OffersPerLeg:  cfg.GetInt("provider.offers_per_leg"),
	})
	log.Printf("Using search provider %q", provider.Name())

	rateLimiter := ratelimit.NewWithDefaults()
	rateLimiter.SetLimit(provider.Name(), cfg.GetFloat64("provider.rps"), cfg.GetInt("provider.burst"))

	var queryCache cache.Cache
	if cfg.GetBool("cache.enabled") {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.GetString("redis.host"),
			Port: cfg.GetString("redis.port"),
			TTL:  cfg.GetDuration("redis.ttl"),
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		queryCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.GetString("redis.host"), cfg.GetString("redis.port"), cfg.GetDuration("redis.ttl"))
	} else {
		queryCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	dispatcher := dispatch.New(provider, dispatch.Config{
		Timeout:    cfg.GetDuration("search.timeout"),
		MaxRetries: cfg.GetInt("search.max_retries"),
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		RateLimiter: rateLimiter,
		Cache:       queryCache,
	})

	searchHandler := handler.NewSearchHandler(planner.New(dispatcher))

	api := e.Group("/api/v1")
	api.POST("/trips/search", searchHandler.Search)
	e.GET("/health", handler.HealthHandler)

	port := cfg.GetString("port")
	log.Printf("Starting trip planner server on port %s", port)

	if err := e.Start(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.max_retries", 3)
	v.SetDefault("provider.latency", 60*time.Millisecond)
	v.SetDefault("provider.latency_jitter", 50*time.Millisecond)
	v.SetDefault("provider.failure_rate", 0.0)
	v.SetDefault("provider.offers_per_leg", 8)
	v.SetDefault("provider.rps", 25.0)
	v.SetDefault("provider.burst", 50)

	v.SetEnvPrefix("tripplanner")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}
