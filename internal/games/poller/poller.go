package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/games/cache"
	"github.com/wrosen/huddlebook/internal/games/repo"
	"github.com/wrosen/huddlebook/internal/providers/scores"
	skafka "github.com/wrosen/huddlebook/internal/shared/kafka"
	"github.com/wrosen/huddlebook/internal/shared/metrics"
	"github.com/wrosen/huddlebook/pkg/contracts/events"
)

// Poller pulls the scoreboard, persists snapshots and fans out score
// changes to kafka.
type Poller struct {
	log    *zap.Logger
	client *scores.Client
	repo   *repo.Postgres
	cache  *cache.Cache
	writer *skafka.Writer
}

func New(log *zap.Logger, client *scores.Client, r *repo.Postgres, c *cache.Cache, w *skafka.Writer) *Poller {
	return &Poller{log: log, client: client, repo: r, cache: c, writer: w}
}

// PollOnce runs one scoreboard refresh. Per-game failures are logged and
// skipped; only the provider fetch itself is fatal for the cycle.
func (p *Poller) PollOnce(ctx context.Context) error {
	games, err := p.client.FetchScoreboard(ctx)
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("scores", "error").Inc()
		return fmt.Errorf("fetch scoreboard: %w", err)
	}
	metrics.ProviderFetches.WithLabelValues("scores", "ok").Inc()

	var weekendID string
	changedCount := 0
	for _, g := range games {
		weekendID = g.WeekendID

		gameID, changed, err := p.repo.Upsert(ctx, &repo.Game{
			ProviderID: g.ProviderID,
			WeekendID:  g.WeekendID,
			HomeTeam:   g.HomeTeam,
			AwayTeam:   g.AwayTeam,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
			State:      g.State,
			Kickoff:    g.Kickoff,
		})
		if err != nil {
			p.log.Error("upsert game", zap.String("providerId", g.ProviderID), zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		changedCount++

		ev := events.ScoreUpdate{
			GameID:    gameID,
			WeekendID: g.WeekendID,
			HomeTeam:  g.HomeTeam,
			AwayTeam:  g.AwayTeam,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
			State:     g.State,
			TsUnixMs:  time.Now().UnixMilli(),
		}
		b, _ := json.Marshal(ev)
		if err := skafka.WriteJSON(ctx, p.writer, gameID, b); err != nil {
			p.log.Warn("publish score_update", zap.String("gameId", gameID), zap.Error(err))
		}
	}

	// Refresh the weekend snapshot the API serves.
	if weekendID != "" {
		stored, err := p.repo.ListByWeekend(ctx, weekendID)
		if err == nil {
			_ = p.cache.SetScores(ctx, weekendID, stored)
		}
	}

	p.log.Info("poll cycle done",
		zap.String("weekendId", weekendID),
		zap.Int("games", len(games)),
		zap.Int("changed", changedCount),
	)
	return nil
}
