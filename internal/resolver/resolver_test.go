package resolver

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/bets/repo"
	"github.com/wrosen/huddlebook/pkg/contracts/events"
)

type fakeStore struct {
	bet       *repo.Bet
	updateErr error
	updated   string
}

func (f *fakeStore) Get(ctx context.Context, betID string) (*repo.Bet, error) {
	if f.bet == nil {
		return nil, repo.ErrNotFound
	}
	return f.bet, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, betID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = status
	f.bet.Status = status
	return nil
}

type fakePublisher struct {
	events []events.BetResolved
	err    error
}

func (f *fakePublisher) PublishBetResolved(ctx context.Context, e events.BetResolved) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func TestResolvePublishesEvent(t *testing.T) {
	store := &fakeStore{bet: &repo.Bet{ID: "b1", WeekendID: "2025-week-3", Status: "active"}}
	publ := &fakePublisher{}
	r := New(zap.NewNop(), store, publ)

	b, err := r.Resolve(context.Background(), "b1", "won", "will")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if b.Status != "won" || store.updated != "won" {
		t.Errorf("status = %q, want won", b.Status)
	}
	if len(publ.events) != 1 || publ.events[0].WeekendID != "2025-week-3" {
		t.Errorf("events = %+v, want one bet_resolved for 2025-week-3", publ.events)
	}
}

func TestResolveInvalidStatus(t *testing.T) {
	r := New(zap.NewNop(), &fakeStore{}, &fakePublisher{})

	_, err := r.Resolve(context.Background(), "b1", "pushed", "will")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestResolveAlreadyResolved(t *testing.T) {
	store := &fakeStore{bet: &repo.Bet{ID: "b1", Status: "won"}, updateErr: repo.ErrAlreadyResolved}
	r := New(zap.NewNop(), store, &fakePublisher{})

	_, err := r.Resolve(context.Background(), "b1", "lost", "will")
	if !errors.Is(err, repo.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestResolvePublishFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{bet: &repo.Bet{ID: "b1", WeekendID: "2025-week-3", Status: "active"}}
	r := New(zap.NewNop(), store, &fakePublisher{err: errors.New("kafka down")})

	b, err := r.Resolve(context.Background(), "b1", "lost", "will")
	if err != nil {
		t.Fatalf("resolve should succeed despite publish failure: %v", err)
	}
	if b.Status != "lost" {
		t.Errorf("status = %q, want lost", b.Status)
	}
}
