package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/api"
	"github.com/wrosen/huddlebook/internal/bets/producer"
	betsrepo "github.com/wrosen/huddlebook/internal/bets/repo"
	gamescache "github.com/wrosen/huddlebook/internal/games/cache"
	gamesrepo "github.com/wrosen/huddlebook/internal/games/repo"
	oddsprov "github.com/wrosen/huddlebook/internal/providers/odds"
	"github.com/wrosen/huddlebook/internal/providers/predmkt"
	"github.com/wrosen/huddlebook/internal/resolver"
	"github.com/wrosen/huddlebook/internal/settlement"
	scache "github.com/wrosen/huddlebook/internal/settlement/cache"
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

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writer (topic bet_resolved)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetResolved)
	defer writer.Close()

	// deps
	bets := betsrepo.NewPostgres(pg)
	games := gamesrepo.NewPostgres(pg)
	gcache := gamescache.New(rdb, 30*time.Second)
	snapshot := scache.New(rdb, 10*time.Minute)
	engine := settlement.NewEngine(log, bets, cfg.Roster)
	publ := producer.NewKafkaPublisher(writer, cfg.TopicBetResolved)
	res := resolver.New(log, bets, publ)
	oddsClient := oddsprov.New(cfg.OddsBaseURL, cfg.OddsAPIKey)
	predmktClient := predmkt.New(cfg.PredMktBaseURL)

	srv := api.NewServer(log, bets, games, gcache, snapshot, engine, res, oddsClient, predmktClient, cfg.Roster)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: srv.Router(),
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	log.Info("api listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
