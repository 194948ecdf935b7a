// Package database persists finished games to Postgres. Like the Redis
// historian, it is optional: a nil pool disables persistence without
// affecting gameplay.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DB is the shared connection pool. Nil until Connect succeeds.
var DB *pgxpool.Pool

// Connect opens a pgx pool against url and verifies it with a ping.
func Connect(ctx context.Context, url string) error {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("postgres ping: %w", err)
	}
	DB = pool
	return nil
}

// Close releases the pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// PlayerStanding is one row of a finished game's final score table.
type PlayerStanding struct {
	PlayerID       uuid.UUID `json:"playerId"`
	Name           string    `json:"name"`
	Points         int       `json:"points"`
	Settlements    int       `json:"settlements"`
	Cities         int       `json:"cities"`
	Roads          int       `json:"roads"`
	KnightsPlayed  int       `json:"knightsPlayed"`
	HasLongestRoad bool      `json:"hasLongestRoad"`
	HasLargestArmy bool      `json:"hasLargestArmy"`
}

// FinalGameState is the persisted record of a completed game.
type FinalGameState struct {
	GameID    uuid.UUID        `json:"gameId"`
	Winner    uuid.UUID        `json:"winner"`
	Standings []PlayerStanding `json:"standings"`
	EndedAt   time.Time        `json:"endedAt"`
}

// StoreFinalGameState upserts a finished game's result row. Safe to call
// with no database configured.
func StoreFinalGameState(ctx context.Context, state FinalGameState) error {
	if DB == nil {
		return nil
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal final state: %w", err)
	}
	_, err = DB.Exec(ctx,
		`INSERT INTO game_results (game_id, winner_id, ended_at, standings)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (game_id) DO UPDATE
		 SET winner_id = EXCLUDED.winner_id,
		     ended_at = EXCLUDED.ended_at,
		     standings = EXCLUDED.standings`,
		state.GameID, state.Winner, state.EndedAt, payload)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"gameID": state.GameID,
		"winner": state.Winner,
	}).Info("stored final game state")
	return nil
}
