package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/farmsync/farmsync-api/internal/cache"
	"github.com/farmsync/farmsync-api/internal/config"
	"github.com/farmsync/farmsync-api/internal/database"
	"github.com/farmsync/farmsync-api/internal/handler"
	"github.com/farmsync/farmsync-api/internal/middleware"
	"github.com/farmsync/farmsync-api/internal/queue"
	"github.com/farmsync/farmsync-api/internal/repository"
	"github.com/farmsync/farmsync-api/internal/router"
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and report caching disabled")
	}

	users := repository.NewUserRepo(db)
	audit := repository.NewAnalysisRepo(db)
	reports := cache.NewReportCache(config.LoadCacheConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users)
	analysisH := handler.NewAnalysisHandler(audit, reports)

	// The audit-event consumer reconnects on its own; run it for the life
	// of the process.
	go func() {
		if err := queue.StartAnalysisConsumer(); err != nil {
			log.Printf("analysis consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterAnalysis(e, analysisH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
