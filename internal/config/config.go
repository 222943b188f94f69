package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	JWTSecret        string
	JWTExpiry        string
	AllowedOrigins   []string
	RedisAddr        string
	RateLimitRPM     int
	SimulatedLatency time.Duration
	ReconcileEvery   time.Duration
}

func Load() *Config {
	// load .env variable; a missing file is fine, env vars still apply
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000, http://localhost:5173"
	}

	rateLimitRPM := 60
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rateLimitRPM = parsed
		}
	}

	simulatedLatency := time.Duration(0)
	if v := os.Getenv("SIMULATED_LATENCY_MS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			simulatedLatency = time.Duration(parsed) * time.Millisecond
		}
	}

	reconcileEvery := time.Minute
	if v := os.Getenv("RECONCILE_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			reconcileEvery = parsed
		}
	}

	return &Config{
		Port:             port,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiry:        os.Getenv("JWT_EXPIRY"),
		AllowedOrigins:   strings.Split(allowedOrigins, ","),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RateLimitRPM:     rateLimitRPM,
		SimulatedLatency: simulatedLatency,
		ReconcileEvery:   reconcileEvery,
	}
}
