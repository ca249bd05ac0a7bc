package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	gamescache "github.com/wrosen/huddlebook/internal/games/cache"
	"github.com/wrosen/huddlebook/internal/games/poller"
	gamesrepo "github.com/wrosen/huddlebook/internal/games/repo"
	"github.com/wrosen/huddlebook/internal/providers/scores"
	"github.com/wrosen/huddlebook/internal/shared/cache"
	"github.com/wrosen/huddlebook/internal/shared/config"
	"github.com/wrosen/huddlebook/internal/shared/db"
	skafka "github.com/wrosen/huddlebook/internal/shared/kafka"
	"github.com/wrosen/huddlebook/internal/shared/logger"
	"github.com/wrosen/huddlebook/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicScoreUpdates)
	defer writer.Close()

	p := poller.New(
		log,
		scores.New(cfg.ScoresBaseURL),
		gamesrepo.NewPostgres(pg),
		gamescache.New(rdb, 30*time.Second),
		writer,
	)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	runOnce := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := p.PollOnce(ctx); err != nil {
			log.Error("poll", zap.Error(err))
		}
	}

	// First snapshot on boot, then on schedule.
	runOnce()

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.PollSchedule, runOnce); err != nil {
		log.Fatal("cron schedule", zap.String("schedule", cfg.PollSchedule), zap.Error(err))
	}

	log.Info("score-poller started", zap.String("schedule", cfg.PollSchedule))
	c.Run()
}
