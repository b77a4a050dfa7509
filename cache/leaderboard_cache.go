// File: /cache/leaderboard_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"xclub-api/models"
)

// LeaderboardCache keeps computed leaderboards in Redis so repeated reads do
// not re-aggregate. Entries expire on their own; writes that change standings
// invalidate eagerly.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(address, password string, ttl time.Duration) (*LeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &LeaderboardCache{client: client, ttl: ttl}, nil
}

func individualKey(challengeID string) string {
	return fmt.Sprintf("leaderboard:%s:individual", challengeID)
}

func teamKey(challengeID string) string {
	return fmt.Sprintf("leaderboard:%s:team", challengeID)
}

// GetIndividual returns the cached individual leaderboard, if present.
// A nil receiver means caching is disabled and always misses.
func (c *LeaderboardCache) GetIndividual(ctx context.Context, challengeID string) ([]models.LeaderboardEntry, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, individualKey(challengeID)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// SetIndividual stores the individual leaderboard with the cache TTL.
func (c *LeaderboardCache) SetIndividual(ctx context.Context, challengeID string, entries []models.LeaderboardEntry) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.client.Set(ctx, individualKey(challengeID), raw, c.ttl)
}

// GetTeam returns the cached team leaderboard, if present.
func (c *LeaderboardCache) GetTeam(ctx context.Context, challengeID string) ([]models.TeamLeaderboardEntry, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, teamKey(challengeID)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []models.TeamLeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// SetTeam stores the team leaderboard with the cache TTL.
func (c *LeaderboardCache) SetTeam(ctx context.Context, challengeID string, entries []models.TeamLeaderboardEntry) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.client.Set(ctx, teamKey(challengeID), raw, c.ttl)
}

// Invalidate drops both leaderboards for a challenge. Called after
// registrations, approvals and progress updates.
func (c *LeaderboardCache) Invalidate(ctx context.Context, challengeID string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, individualKey(challengeID), teamKey(challengeID))
}

// Close closes the Redis connection.
func (c *LeaderboardCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
