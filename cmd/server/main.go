package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"transport-backend/internal/api/routes"
	"transport-backend/internal/config"
	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/jwt"
	"transport-backend/pkg/ratelimit"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// In-memory store with the demonstration fleet
	store := repository.NewStore()
	if err := repository.Seed(time.Now(), store.Buses, store.Drivers, store.Students, store.Routes, store.Trips, store.Users); err != nil {
		log.Fatal("Failed to seed data:", err)
	}

	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiry)

	// Rate limiter: shared fixed-window on redis when configured,
	// per-process token bucket otherwise
	limiterCfg := ratelimit.Config{RequestsPerMinute: cfg.RateLimitRPM, Burst: cfg.RateLimitRPM / 4}
	if limiterCfg.Burst < 1 {
		limiterCfg.Burst = 1
	}
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(limiterCfg)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis connection failed, using in-memory rate limiter: %v", err)
		} else {
			log.Printf("Redis connected at %s", cfg.RedisAddr)
			limiter = ratelimit.NewRedisLimiter(redisClient, limiterCfg)
		}
	}

	// One status service for the handlers and the reconcile ticker,
	// so promotion passes honor the same per-entity reservations as
	// in-flight proposals
	statusService := services.NewStatusService(store.Buses, store.Drivers, store.Students)
	go func() {
		ticker := time.NewTicker(cfg.ReconcileEvery)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := statusService.Reconcile(time.Now()); err != nil {
				log.Printf("Reconcile pass failed: %v", err)
			}
		}
	}()

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false // Cannot use credentials with AllowAllOrigins
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(router, cfg, store, jwtUtil, limiter, statusService)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
