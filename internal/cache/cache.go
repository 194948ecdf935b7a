// Package cache publishes game action history to Redis for the historian
// service. Everything here is fire-and-forget: the game never blocks on
// Redis and runs fine without it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the shared Redis client. Nil until InitRedis succeeds; callers
// must treat nil as "history disabled".
var Rdb *redis.Client

// InitRedis connects and pings the Redis instance at addr.
func InitRedis(ctx context.Context, addr string) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", addr, err)
	}
	Rdb = client
	return nil
}

// GameActionRecord is one entry in a game's action history.
type GameActionRecord struct {
	GameID      uuid.UUID              `json:"gameId"`
	ActionIndex int64                  `json:"actionIndex"`
	ActorID     uuid.UUID              `json:"actorId"` // Nil for game-driven events
	ActionType  string                 `json:"actionType"`
	Payload     map[string]interface{} `json:"payload"`
	Timestamp   int64                  `json:"timestamp"` // unix millis
}

// actionListKey returns the Redis key holding a game's ordered history.
func actionListKey(gameID uuid.UUID) string {
	return "game:actions:" + gameID.String()
}

// PublishGameAction appends one record to the game's history list.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	if err := Rdb.RPush(ctx, actionListKey(rec.GameID), data).Err(); err != nil {
		return fmt.Errorf("rpush action record: %w", err)
	}
	return nil
}

// FetchGameActions returns a game's full recorded history in order.
func FetchGameActions(ctx context.Context, gameID uuid.UUID) ([]GameActionRecord, error) {
	if Rdb == nil {
		return nil, nil
	}
	raw, err := Rdb.LRange(ctx, actionListKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange action records: %w", err)
	}
	out := make([]GameActionRecord, 0, len(raw))
	for _, item := range raw {
		var rec GameActionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal action record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
