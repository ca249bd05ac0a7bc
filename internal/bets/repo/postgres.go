package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wrosen/huddlebook/internal/settlement"
)

// Postgres implements bet persistence.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyResolved = errors.New("bet already resolved")
)

// Create inserts a new bet with status active.
func (p *Postgres) Create(ctx context.Context, b *Bet) (string, error) {
	id := uuid.NewString()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (id,weekend_id,status,betting_mode,placed_by,participants,amount_per_person,total_amount,odds,selection)
		VALUES ($1,$2,'active',$3,$4,$5,$6,$7,$8,$9)`,
		id, b.WeekendID, b.Mode, b.PlacedBy, pq.Array(b.Participants),
		b.AmountPerPerson, b.AmountPerPerson*float64(len(b.Participants)), b.Odds, b.Selection,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns one bet by id.
func (p *Postgres) Get(ctx context.Context, betID string) (*Bet, error) {
	b := &Bet{}
	err := p.db.QueryRowContext(ctx, `
		SELECT id,weekend_id,status,betting_mode,placed_by,participants,amount_per_person,total_amount,odds,selection,created_at,updated_at
		FROM bets WHERE id=$1`, betID).
		Scan(&b.ID, &b.WeekendID, &b.Status, &b.Mode, &b.PlacedBy, pq.Array(&b.Participants),
			&b.AmountPerPerson, &b.TotalAmount, &b.Odds, &b.Selection, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListByWeekend returns every bet of one weekend, newest first.
func (p *Postgres) ListByWeekend(ctx context.Context, weekendID string) ([]Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id,weekend_id,status,betting_mode,placed_by,participants,amount_per_person,total_amount,odds,selection,created_at,updated_at
		FROM bets WHERE weekend_id=$1 ORDER BY created_at DESC`, weekendID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(&b.ID, &b.WeekendID, &b.Status, &b.Mode, &b.PlacedBy, pq.Array(&b.Participants),
			&b.AmountPerPerson, &b.TotalAmount, &b.Odds, &b.Selection, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus moves an active bet to won/lost/cancelled. Resolving a bet
// twice is rejected so settlement input cannot flip under a rerun.
func (p *Postgres) UpdateStatus(ctx context.Context, betID, status string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE bets SET status=$1, updated_at=NOW() WHERE id=$2 AND status='active'`, status, betID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, gerr := p.Get(ctx, betID); gerr != nil {
			return gerr
		}
		return ErrAlreadyResolved
	}
	return nil
}

// BetsForWeekend adapts stored rows to the settlement engine's read
// interface.
func (p *Postgres) BetsForWeekend(ctx context.Context, weekendID string) ([]settlement.Bet, error) {
	rows, err := p.ListByWeekend(ctx, weekendID)
	if err != nil {
		return nil, err
	}

	out := make([]settlement.Bet, 0, len(rows))
	for _, b := range rows {
		out = append(out, settlement.Bet{
			ID:              b.ID,
			WeekendID:       b.WeekendID,
			Status:          settlement.Status(b.Status),
			Mode:            settlement.Mode(b.Mode),
			PlacedBy:        b.PlacedBy,
			Participants:    b.Participants,
			AmountPerPerson: b.AmountPerPerson,
			TotalAmount:     b.TotalAmount,
			Odds:            b.Odds,
			Selection:       b.Selection,
		})
	}
	return out, nil
}
