package main

import (
	"context"
	"time"

	"github.com/prepwise/interview-coach/internal/ai"
	"github.com/prepwise/interview-coach/internal/chat"
	"github.com/prepwise/interview-coach/internal/config"
	"github.com/prepwise/interview-coach/internal/db"
	"github.com/prepwise/interview-coach/internal/httpapi"
	"github.com/prepwise/interview-coach/internal/httpapi/handlers"
	"github.com/prepwise/interview-coach/internal/logger"
	"github.com/prepwise/interview-coach/internal/store/rabbitmq"
	"github.com/prepwise/interview-coach/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		logger.Log.Fatalf("database connect: %v", err)
	}

	repo := chat.NewRepo(gdb)

	// Provider registry (tests and future providers register here too)
	reg := ai.NewRegistry()
	reg.Register("openrouter", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		_ = model
		return ai.NewOpenRouterProvider(
			cfg.OpenRouterBaseURL,
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterModel,
			cfg.OpenRouterSiteURL,
			cfg.OpenRouterAppName,
		), nil
	})
	reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := model
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})
	if cfg.AIProvider == "openrouter" && cfg.OpenRouterAPIKey == "" {
		logger.Log.Warn("OPENROUTER_API_KEY not set; chat replies will use the unconfigured sentinel")
	}

	// Optional recent-input cache
	var cache chat.RecentInputCache
	if cfg.RedisAddr != "" {
		rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, chat.RecentInputLimit)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rds.Ping(pingCtx); err != nil {
			logger.Log.WithError(err).Warn("redis unreachable; recent-input cache disabled")
		} else {
			cache = rds
		}
		cancel()
	}

	// Optional exchange event publisher
	var events chat.ExchangePublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			logger.Log.WithError(err).Warn("rabbitmq unreachable; exchange events disabled")
		} else {
			defer pub.Close()
			events = pub
		}
	}

	sessionSvc := chat.NewSessionService(repo)
	chatSvc := chat.NewService(repo, reg, cfg.AIProvider, cfg.ChatTimeoutSecs, events)
	historySvc := chat.NewHistoryService(repo, cache)

	h := handlers.NewHandler(sessionSvc, chatSvc, historySvc)
	r := httpapi.NewRouter(cfg, h)

	logger.Log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("server: %v", err)
	}
}
