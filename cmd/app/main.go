package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-chat-logger/internal/config"
	pg "telegram-chat-logger/internal/infra/db/postgres"
	"telegram-chat-logger/internal/infra/logging"
	"telegram-chat-logger/internal/infra/metrics"
	red "telegram-chat-logger/internal/infra/redis"
	tele "telegram-chat-logger/internal/infra/telegram"
	"telegram-chat-logger/internal/infra/web"
	"telegram-chat-logger/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres (retries transient failures, provisions schema) ----
	pool, err := pg.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error().Err(err).Msg("database initialization failed")
		os.Exit(1)
	}
	defer pool.Close()

	go func() {
		t := time.NewTicker(15 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				st := pool.Stat()
				metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
			}
		}
	}()

	// ---- Repositories & use cases ----
	userRepo := pg.NewUserRepo(pool)
	messageRepo := pg.NewMessageRepo(pool)

	userUC := usecase.NewUserUseCase(userRepo, logger)
	messageUC := usecase.NewMessageUseCase(messageRepo, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, messageRepo, logger)

	// ---- Redis rate limiter (optional) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Error().Err(err).Msg("redis connection failed")
			os.Exit(1)
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	}

	// ---- Telegram ingestion (optional) ----
	switch {
	case cfg.Bot.Token == "":
		logger.Warn().Msg("no bot token configured, ingestion disabled")
	case cfg.Bot.Disabled:
		logger.Warn().Msg("ingestion disabled by configuration")
	default:
		bot, err := tele.NewBot(&cfg.Bot, logger, rateLimiter)
		if err != nil {
			logger.Error().Err(err).Msg("telegram bot init failed")
			os.Exit(1)
		}
		bot.SetIngest(usecase.NewIngestUseCase(userUC, messageUC, bot, logger))
		go func() {
			if err := bot.StartPolling(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- Read API ----
	srv := web.NewServer(userUC, messageUC, statsUC, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("read api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
}
