package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"core/models"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardCacheDuration = time.Hour
	leaderboardKey           = "leaderboard:%s"
)

// LeaderboardCache is an optional materialized view of the per-sport
// leaderboards. Implementations must tolerate being stale for at most one
// confirmation: the workflow invalidates the sport's key on every commit.
type LeaderboardCache interface {
	Get(ctx context.Context, sport string) ([]models.LeaderboardEntry, bool)
	Set(ctx context.Context, sport string, entries []models.LeaderboardEntry)
	Invalidate(ctx context.Context, sport string) error
}

type redisLeaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache wraps a redis client as a leaderboard cache.
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &redisLeaderboardCache{client: client}
}

// NewLeaderboardCacheFromEnv builds a cache from REDIS_URL, or returns nil
// when no redis is configured; callers treat a nil cache as "recompute on
// every read".
func NewLeaderboardCacheFromEnv() LeaderboardCache {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, leaderboard cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, leaderboard cache disabled: %v", err)
		return nil
	}

	return NewLeaderboardCache(redis.NewClient(opts))
}

func (c *redisLeaderboardCache) Get(ctx context.Context, sport string) ([]models.LeaderboardEntry, bool) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(leaderboardKey, sport)).Result()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else degrades to a miss
		// too, the read side can always recompute.
		return nil, false
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}

	return entries, true
}

func (c *redisLeaderboardCache) Set(ctx context.Context, sport string, entries []models.LeaderboardEntry) {
	j, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.client.Set(ctx, fmt.Sprintf(leaderboardKey, sport), string(j), leaderboardCacheDuration)
}

func (c *redisLeaderboardCache) Invalidate(ctx context.Context, sport string) error {
	return c.client.Del(ctx, fmt.Sprintf(leaderboardKey, sport)).Err()
}
