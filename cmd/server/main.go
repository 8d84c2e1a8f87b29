package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gradelab/code-grading-api/internal/api"
	"github.com/gradelab/code-grading-api/internal/api/metrics"
	"github.com/gradelab/code-grading-api/internal/core/ports"
	"github.com/gradelab/code-grading-api/internal/core/service"
	"github.com/gradelab/code-grading-api/internal/infrastructure/config"
	mongodb "github.com/gradelab/code-grading-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gradelab/code-grading-api/internal/infrastructure/db/redis"
	"github.com/gradelab/code-grading-api/internal/infrastructure/inference"
	"github.com/gradelab/code-grading-api/internal/infrastructure/storage"
	"github.com/gradelab/code-grading-api/pkg/logger"
)

const staticDir = "static"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; write the reason and bail.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	// The grade cache is optional: no REDIS_ADDR means every grading call
	// hits the inference backend.
	var rdb *goredis.Client
	var cache ports.GradeCache
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		cache = redisdb.NewGradeCache(rdb)
	}

	uploads, err := storage.NewUploadStore(cfg.UploadDir, cfg.AllowedExtensions)
	if err != nil {
		log.Fatal().Err(err).Msg("upload store init failed")
	}
	reports, err := storage.NewFileReportStore(cfg.ResultsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("report store init failed")
	}

	ollama := inference.NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Model, inference.DefaultTimeout)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	gradingService := service.NewGradingService(ollama, reports, cache, cfg.Ollama.Model, log)

	e := api.NewRouter(api.Dependencies{
		DB:          db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		AuthService: authService,
		Grading:     gradingService,
		Uploads:     uploads,
		Reports:     reports,
		StaticDir:   staticDir,
		Logger:      log,
	})

	// Fire-and-forget warmup: the server must accept requests immediately,
	// even mid-warmup, so this goroutine is never joined.
	go warmup(ollama, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("model", cfg.Ollama.Model).Msg("starting grading API")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// warmup issues one throwaway generation so the model is resident before the
// first real request. Failures are logged, never fatal.
func warmup(client ports.InferenceClient, log zerolog.Logger) {
	log.Info().Msg("warming up model")

	ctx, cancel := context.WithTimeout(context.Background(), inference.DefaultTimeout)
	defer cancel()

	if err := client.Warmup(ctx); err != nil {
		metrics.WarmupTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("model warmup failed")
		return
	}

	metrics.WarmupTotal.WithLabelValues("ok").Inc()
	log.Info().Msg("model warmup complete")
}
