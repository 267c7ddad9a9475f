package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"havenchat/internal/assist"
	"havenchat/internal/config"
	apihttp "havenchat/internal/http"
	"havenchat/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	transport := assist.NewHTTPClient(
		cfg.AssistantBaseURL,
		cfg.AssistantAPIKey,
		time.Duration(cfg.AssistantTimeoutSeconds)*time.Second,
		zap.NewStdLog(logger),
	)

	var limiter service.SubmitRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmitRateLimiter(
				redisClient,
				time.Duration(cfg.SubmitRateWindowSeconds)*time.Second,
				cfg.SubmitRateMax,
			)
		}
		cancel()
	}

	if cfg.SessionTokenSecret == "" {
		logger.Warn("session token secret not configured")
	}
	tokens := service.NewSessionTokenService(
		cfg.SessionTokenSecret,
		time.Duration(cfg.SessionTokenTTLMinutes)*time.Minute,
	)

	store := service.NewSessionStore()
	sessionHandler := apihttp.NewSessionHandler(logger, store, tokens, transport, limiter)
	eventsHandler := apihttp.NewEventsHandler(logger, store)
	router := apihttp.NewRouter(logger, sessionHandler, eventsHandler, tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
