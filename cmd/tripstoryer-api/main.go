// README: Entry point; loads config, wires the model/narration/enrichment clients, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripstoryer/internal/ai"
	"tripstoryer/internal/config"
	httptransport "tripstoryer/internal/http"
	"tripstoryer/internal/infra"
	"tripstoryer/internal/logger"
	tripmaps "tripstoryer/internal/maps"
	"tripstoryer/internal/modules/usage"
	"tripstoryer/internal/narration"
	"tripstoryer/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		zlog.Fatal("gemini init", zap.Error(err))
	}
	defer model.Close()

	narrator := narration.NewClient(
		cfg.Narration.BaseURL,
		cfg.Narration.APIKey,
		cfg.Narration.VoiceID,
		cfg.Narration.ModelID,
		cfg.Narration.Timeout,
	)

	deps := service.PlannerDeps{
		Model:       model,
		Logger:      zlog,
		MaxAttempts: cfg.AI.MaxAttempts,
		CallTimeout: cfg.AI.Timeout,
	}
	routerDeps := httptransport.RouterDeps{
		Narrator:      narrator,
		Logger:        zlog,
		PlanPerMinute: cfg.RateLimit.PlanPerMinute,
	}

	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
		routerDeps.Redis = redisClient

		if cfg.Maps.APIKey != "" {
			places, err := tripmaps.NewPlacesService(cfg.Maps.APIKey, tripmaps.NewCache(redisClient))
			if err != nil {
				zlog.Fatal("places init", zap.Error(err))
			}
			deps.Places = places
		}
	} else if cfg.Maps.APIKey != "" {
		places, err := tripmaps.NewPlacesService(cfg.Maps.APIKey, nil)
		if err != nil {
			zlog.Fatal("places init", zap.Error(err))
		}
		deps.Places = places
	}

	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			zlog.Fatal("db init", zap.Error(err))
		}
		defer dbPool.Close()
		deps.Quota = usage.NewService(usage.NewStore(dbPool))
	}

	routerDeps.Planner = service.NewStoryPlanner(deps)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(routerDeps),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("shutdown", zap.Error(err))
		}
	}()

	zlog.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("serve", zap.Error(err))
	}
}

