package main

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	betsrepo "github.com/wrosen/huddlebook/internal/bets/repo"
	"github.com/wrosen/huddlebook/internal/settlement"
	scache "github.com/wrosen/huddlebook/internal/settlement/cache"
	"github.com/wrosen/huddlebook/internal/shared/cache"
	"github.com/wrosen/huddlebook/internal/shared/config"
	"github.com/wrosen/huddlebook/internal/shared/db"
	"github.com/wrosen/huddlebook/internal/shared/kafka"
	"github.com/wrosen/huddlebook/internal/shared/logger"
	"github.com/wrosen/huddlebook/internal/shared/metrics"
	ev "github.com/wrosen/huddlebook/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}

	// Kafka consumer: bet_resolved events trigger a ledger refresh.
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  "settlement-worker",
		Topic:    cfg.TopicBetResolved,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	var dlqWriter *kafkago.Writer
	if cfg.TopicBetResolvedDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetResolvedDLQ)
		defer dlqWriter.Close()
	}

	engine := settlement.NewEngine(log, betsrepo.NewPostgres(pg), cfg.Roster)
	snapshot := scache.New(rdb, 10*time.Minute)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	log.Info("settlement-worker started", zap.String("consume", cfg.TopicBetResolved))

	ctx := context.Background()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var resolved ev.BetResolved
		if jerr := json.Unmarshal(msg.Value, &resolved); jerr != nil {
			log.Error("unmarshal bet_resolved", zap.Error(jerr))
			continue
		}

		if err := refreshWeekend(ctx, log, engine, snapshot, resolved.WeekendID); err != nil {
			log.Error("refresh settlement", zap.String("weekendId", resolved.WeekendID), zap.Error(err))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, resolved.BetID, msg.Value)
			}
			time.Sleep(500 * time.Millisecond)
		}
	}
}

// refreshWeekend recomputes the weekend ledger and replaces the cached
// snapshot. Retries shortly before giving the message to the DLQ.
func refreshWeekend(
	ctx context.Context,
	log *zap.Logger,
	engine *settlement.Engine,
	snapshot *scache.Snapshot,
	weekendID string,
) error {
	const retries = 3

	var res *settlement.Result
	var err error
	start := time.Now()
	for i := 0; i < retries; i++ {
		if res, err = engine.Settle(ctx, weekendID); err == nil {
			break
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	if err != nil {
		metrics.SettlementRuns.WithLabelValues("error").Inc()
		return err
	}
	metrics.SettlementRuns.WithLabelValues("ok").Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())

	if err := snapshot.Set(ctx, res); err != nil {
		return err
	}

	log.Info("settlement refreshed",
		zap.String("weekendId", weekendID),
		zap.Int("settlements", len(res.Settlements)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return nil
}
