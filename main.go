package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/inkpress/inkpress/handlers"
	"github.com/inkpress/inkpress/internal/assets"
	"github.com/inkpress/inkpress/internal/config"
	"github.com/inkpress/inkpress/internal/database"
	"github.com/inkpress/inkpress/internal/post/pipeline"
	"github.com/inkpress/inkpress/internal/post/store"
	"github.com/inkpress/inkpress/internal/revalidate"
	"github.com/inkpress/inkpress/pkg/logger"
	"github.com/inkpress/inkpress/pkg/metrics"
	"github.com/inkpress/inkpress/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: project=%s dataset=%s mongo=%v redis=%v", cfg.Store.ProjectID, cfg.Store.Dataset, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Connect to Redis early so both the page cache and the rate limiter can use it
	var redisClient *redis.Client
	var pageCache *revalidate.PageCache
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			pageCache = revalidate.NewPageCache(redisClient, "page:", cfg.Redis.PageTTL)
			logger.Infof("Connected to Redis for page cache: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per client IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races; fall
	// back to the in-memory store in dev when Mongo is unreachable.
	var postStore store.Store
	mongoOK := false
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				defer func() { _ = client.Disconnect(ctx) }()
				col := database.PostsCollection(client, cfg.Store.ProjectID, cfg.Store.Dataset)
				postStore = store.NewMongoStore(col)
				mongoOK = true
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
	}
	if postStore == nil {
		logger.Warn("using in-memory post store; documents will not survive a restart")
		postStore = store.NewMemoryStore()
	}

	// Asset uploader is optional: without MinIO, image submissions are
	// skipped with a diagnostic and mutations still succeed.
	var uploader assets.Uploader
	minioOK := false
	if minioCfg := assets.LoadConfig(); minioCfg.Endpoint != "" {
		up, err := assets.NewMinIOUploader(minioCfg)
		if err != nil {
			logger.Warnf("failed to initialize asset uploader: %v", err)
		} else {
			uploader = up
			minioOK = true
		}
	}

	var trigger revalidate.Trigger = revalidate.Noop{}
	if pageCache != nil {
		trigger = pageCache
	}

	pipe := pipeline.New(postStore, uploader, trigger)

	// handlers only consult the cache when cache mode says so
	handlerCache := pageCache
	if cfg.Store.CacheMode != "cached" {
		handlerCache = nil
	}
	handlers.NewPostHandler(pipe, postStore, handlerCache).Register(r)
	handlers.RegisterSwagger(r)

	// readiness endpoint — report dependency state; the service stays usable
	// on the memory store, so only a fully absent store is fatal
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]any{
			"store":      mongoOK,
			"redis":      redisClient != nil,
			"assets":     minioOK,
			"projectId":  cfg.Store.ProjectID,
			"dataset":    cfg.Store.Dataset,
			"apiVersion": cfg.Store.APIVersion,
			"tokenSet":   cfg.Store.AccessToken != "",
		}
		status := http.StatusOK
		state := "ready"
		if postStore == nil {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting content service on %s (env=%s, cacheMode=%s)", addr, cfg.Server.Environment, cfg.Store.CacheMode)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
