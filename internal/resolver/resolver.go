package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/bets/repo"
	"github.com/wrosen/huddlebook/internal/shared/metrics"
	"github.com/wrosen/huddlebook/pkg/contracts/events"
)

var ErrInvalidStatus = errors.New("invalid resolution status")

// BetStore is the storage surface the resolver needs.
type BetStore interface {
	Get(ctx context.Context, betID string) (*repo.Bet, error)
	UpdateStatus(ctx context.Context, betID, status string) error
}

// Publisher emits a bet_resolved event after a successful transition.
type Publisher interface {
	PublishBetResolved(ctx context.Context, e events.BetResolved) error
}

// Resolver moves active bets to a final status and notifies the settlement
// pipeline. Bets are graded by the crew, not parsed out of selection text.
type Resolver struct {
	log   *zap.Logger
	store BetStore
	publ  Publisher
}

func New(log *zap.Logger, store BetStore, publ Publisher) *Resolver {
	return &Resolver{log: log, store: store, publ: publ}
}

// Resolve marks one bet won/lost/cancelled. The status transition is the
// source of truth; the kafka event is a best-effort notification.
func (r *Resolver) Resolve(ctx context.Context, betID, status, resolvedBy string) (*repo.Bet, error) {
	switch status {
	case "won", "lost", "cancelled":
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := r.store.UpdateStatus(ctx, betID, status); err != nil {
		return nil, err
	}

	b, err := r.store.Get(ctx, betID)
	if err != nil {
		return nil, err
	}

	metrics.BetsResolved.WithLabelValues(status).Inc()

	if err := r.publ.PublishBetResolved(ctx, events.BetResolved{
		BetID:     b.ID,
		WeekendID: b.WeekendID,
		Status:    status,
		Resolver:  resolvedBy,
	}); err != nil {
		r.log.Warn("publish bet_resolved", zap.String("betId", betID), zap.Error(err))
	}

	return b, nil
}
