package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quiz-player/internal/adapter"
	"quiz-player/internal/cache"
	"quiz-player/internal/config"
	"quiz-player/internal/database"
	"quiz-player/internal/domain"
	"quiz-player/internal/logger"
	"quiz-player/internal/repository"
	"quiz-player/internal/schedulefile"
	"quiz-player/internal/service"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "config/schedules/sample.yaml", "YAML schedule file")
	videoID := flag.String("video", "", "video ID; overrides video_id from the file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	f, err := schedulefile.Load(*file)
	if err != nil {
		log.Fatal("Failed to load schedule file", zap.String("path", *file), zap.Error(err))
	}
	if *videoID != "" {
		f.VideoID = *videoID
	}
	if f.VideoID == "" {
		log.Fatal("Schedule file has no video_id and -video was not given", zap.String("path", *file))
	}
	groups, err := f.QuestionGroups()
	if err != nil {
		log.Fatal("Invalid schedule file", zap.String("path", *file), zap.Error(err))
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	// Without Redis a stale cached schedule expires on its own TTL.
	var cacheAdapter domain.Cache
	if redisClient, err := cache.NewRedisClient(ctx, cfg.Redis); err != nil {
		log.Warn("Redis unavailable, cached schedule will not be invalidated", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	svc := service.NewScheduleService(
		repository.NewScheduleDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		cacheAdapter,
		cfg,
	)
	saved, err := svc.SaveSchedule(ctx, f.VideoID, groups)
	if err != nil {
		log.Fatal("Failed to save schedule", zap.String("video_id", f.VideoID), zap.Error(err))
	}

	questions := 0
	for _, g := range saved {
		questions += len(g.Questions)
	}
	log.Info("Schedule seeded",
		zap.String("video_id", f.VideoID),
		zap.Int("groups", len(saved)),
		zap.Int("questions", questions),
	)
}
