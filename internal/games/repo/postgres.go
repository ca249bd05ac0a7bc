package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Postgres implements game persistence.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var ErrNotFound = errors.New("not found")

// Upsert inserts or refreshes a game keyed by the provider's id, returning
// our id and whether score or state changed since the last snapshot.
func (p *Postgres) Upsert(ctx context.Context, g *Game) (id string, changed bool, err error) {
	var prevState string
	var prevHome, prevAway int

	err = p.db.QueryRowContext(ctx,
		`SELECT id, state, home_score, away_score FROM games WHERE provider_id=$1`, g.ProviderID).
		Scan(&id, &prevState, &prevHome, &prevAway)
	if err == sql.ErrNoRows {
		id = uuid.NewString()
		_, err = p.db.ExecContext(ctx, `
			INSERT INTO games (id,provider_id,weekend_id,home_team,away_team,home_score,away_score,state,kickoff)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			id, g.ProviderID, g.WeekendID, g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore, g.State, g.Kickoff)
		return id, true, err
	}
	if err != nil {
		return "", false, err
	}

	changed = prevState != g.State || prevHome != g.HomeScore || prevAway != g.AwayScore
	if !changed {
		return id, false, nil
	}

	_, err = p.db.ExecContext(ctx, `
		UPDATE games SET home_score=$1, away_score=$2, state=$3, updated_at=NOW() WHERE id=$4`,
		g.HomeScore, g.AwayScore, g.State, id)
	return id, true, err
}

// Get returns one game by id.
func (p *Postgres) Get(ctx context.Context, gameID string) (*Game, error) {
	g := &Game{}
	err := p.db.QueryRowContext(ctx, `
		SELECT id,provider_id,weekend_id,home_team,away_team,home_score,away_score,state,kickoff,updated_at
		FROM games WHERE id=$1`, gameID).
		Scan(&g.ID, &g.ProviderID, &g.WeekendID, &g.HomeTeam, &g.AwayTeam,
			&g.HomeScore, &g.AwayScore, &g.State, &g.Kickoff, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListByWeekend returns all games of one weekend in kickoff order.
func (p *Postgres) ListByWeekend(ctx context.Context, weekendID string) ([]Game, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id,provider_id,weekend_id,home_team,away_team,home_score,away_score,state,kickoff,updated_at
		FROM games WHERE weekend_id=$1 ORDER BY kickoff`, weekendID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.ProviderID, &g.WeekendID, &g.HomeTeam, &g.AwayTeam,
			&g.HomeScore, &g.AwayScore, &g.State, &g.Kickoff, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
