package services

import (
	"context"
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLeaderboardCache records cache traffic without a redis server.
type fakeLeaderboardCache struct {
	entries     map[string][]models.LeaderboardEntry
	sets        int
	invalidated []string
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{entries: make(map[string][]models.LeaderboardEntry)}
}

func (c *fakeLeaderboardCache) Get(_ context.Context, sport string) ([]models.LeaderboardEntry, bool) {
	entries, ok := c.entries[sport]
	return entries, ok
}

func (c *fakeLeaderboardCache) Set(_ context.Context, sport string, entries []models.LeaderboardEntry) {
	c.entries[sport] = entries
	c.sets++
}

func (c *fakeLeaderboardCache) Invalidate(_ context.Context, sport string) error {
	delete(c.entries, sport)
	c.invalidated = append(c.invalidated, sport)
	return nil
}

func TestGetLeaderboardOrdersByRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaderboardService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	createTestPlayer(t, db, "carol")
	setRating(t, db, "alice", models.SportPingPong, 1250)
	setRating(t, db, "bob", models.SportPingPong, 1310)

	entries, err := svc.GetLeaderboard(models.SportPingPong)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "bob", entries[0].Handle)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "alice", entries[1].Handle)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "carol", entries[2].Handle)
	assert.Equal(t, models.DisplayDefaultRating, entries[2].Rating, "unplayed sports show the display default")
}

func TestGetLeaderboardTiesBreakByHandle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaderboardService(db, nil)
	createTestPlayer(t, db, "zoe")
	createTestPlayer(t, db, "amy")
	setRating(t, db, "zoe", models.SportPool, 1200)
	setRating(t, db, "amy", models.SportPool, 1200)

	entries, err := svc.GetLeaderboard(models.SportPool)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "amy", entries[0].Handle)
	assert.Equal(t, "zoe", entries[1].Handle)
}

func TestGetLeaderboardRejectsUnknownSport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaderboardService(db, nil)

	_, err := svc.GetLeaderboard("curling")
	assert.ErrorIs(t, err, ErrInvalidSport)
}

func TestGetLeaderboardUsesCache(t *testing.T) {
	db := setupTestDB(t)
	fake := newFakeLeaderboardCache()
	svc := NewLeaderboardService(db, fake)
	createTestPlayer(t, db, "alice")
	setRating(t, db, "alice", models.SportTennis, 1280)

	first, err := svc.GetLeaderboard(models.SportTennis)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.sets, "a miss populates the cache")

	// A rating change behind the cache's back is not visible until
	// invalidation; the read side serves the cached copy.
	require.NoError(t, db.Model(&models.PlayerRating{}).
		Where("player_handle = ?", "alice").
		Update("rating", 1400).Error)

	second, err := svc.GetLeaderboard(models.SportTennis)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.sets)

	require.NoError(t, fake.Invalidate(context.Background(), models.SportTennis))

	third, err := svc.GetLeaderboard(models.SportTennis)
	require.NoError(t, err)
	assert.Equal(t, 1400, third[0].Rating)
}

func TestConfirmMatchInvalidatesLeaderboardCache(t *testing.T) {
	db := setupTestDB(t)
	fake := newFakeLeaderboardCache()
	matchSvc := NewMatchService(db, fake)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")

	match := reportTestMatch(t, matchSvc, "alice", "bob", models.SportFoosball, 10, 4)
	_, err := matchSvc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)

	assert.Equal(t, []string{models.SportFoosball}, fake.invalidated)
}
