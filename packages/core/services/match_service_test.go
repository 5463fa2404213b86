package services

import (
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportTestMatch(t *testing.T, svc *MatchService, reporter, opponent, sport string, reporterScore, opponentScore int) *models.PendingMatch {
	t.Helper()

	match, err := svc.ReportMatch(reporter, models.ReportMatchRequest{
		Sport:          sport,
		OpponentHandle: opponent,
		ReporterScore:  intPtr(reporterScore),
		OpponentScore:  intPtr(opponentScore),
	})
	require.NoError(t, err)
	return match
}

func TestReportMatchCreatesPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")

	match := reportTestMatch(t, svc, "alice", "Bob", models.SportPingPong, 11, 5)

	assert.NotEmpty(t, match.ID)
	assert.Equal(t, "alice", match.ReporterHandle)
	assert.Equal(t, "bob", match.OpponentHandle, "opponent handle is normalized to lowercase")
	assert.False(t, match.Confirmed)

	var count int64
	db.Model(&models.PendingMatch{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReportMatchRejectsSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")

	_, err := svc.ReportMatch("alice", models.ReportMatchRequest{
		Sport:          models.SportPool,
		OpponentHandle: "Alice",
		ReporterScore:  intPtr(8),
		OpponentScore:  intPtr(3),
	})
	assert.ErrorIs(t, err, ErrSelfMatch)

	var count int64
	db.Model(&models.PendingMatch{}).Count(&count)
	assert.Zero(t, count, "rejected report must not leave a row behind")
}

func TestReportMatchRejectsUnknownSport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)

	_, err := svc.ReportMatch("alice", models.ReportMatchRequest{
		Sport:          "cricket",
		OpponentHandle: "bob",
		ReporterScore:  intPtr(1),
		OpponentScore:  intPtr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidSport)
}

func TestConfirmMatchUpdatesBothRatings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	setRating(t, db, "alice", models.SportPingPong, 1200)
	setRating(t, db, "bob", models.SportPingPong, 1200)

	match := reportTestMatch(t, svc, "alice", "bob", models.SportPingPong, 11, 5)

	completed, err := svc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)
	assert.True(t, completed.Confirmed)
	assert.Equal(t, match.ID, completed.ID)
	assert.False(t, completed.ConfirmedAt.IsZero())

	var aliceRating, bobRating models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPingPong).First(&aliceRating).Error)
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "bob", models.SportPingPong).First(&bobRating).Error)
	assert.Equal(t, 1206, aliceRating.Rating)
	assert.Equal(t, 1194, bobRating.Rating)

	var pendingCount int64
	db.Model(&models.PendingMatch{}).Count(&pendingCount)
	assert.Zero(t, pendingCount, "confirmation must remove the pending row")
}

func TestConfirmMatchSeedsDefaultRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")

	// Neither player has ever played; both start from the mutation default.
	match := reportTestMatch(t, svc, "alice", "bob", models.SportFoosball, 10, 8)

	_, err := svc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)

	var aliceRating, bobRating models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportFoosball).First(&aliceRating).Error)
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "bob", models.SportFoosball).First(&bobRating).Error)
	assert.Greater(t, aliceRating.Rating, models.MutationDefaultRating)
	assert.Less(t, bobRating.Rating, models.MutationDefaultRating)
}

func TestConfirmMatchOnlyOpponentMayConfirm(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	createTestPlayer(t, db, "carol")

	match := reportTestMatch(t, svc, "alice", "bob", models.SportTennis, 6, 4)

	_, err := svc.ConfirmMatch(match.ID, "alice")
	assert.ErrorIs(t, err, ErrUnauthorized, "the reporter cannot confirm their own report")

	_, err = svc.ConfirmMatch(match.ID, "carol")
	assert.ErrorIs(t, err, ErrUnauthorized, "a third party cannot confirm")

	var pendingCount int64
	db.Model(&models.PendingMatch{}).Count(&pendingCount)
	assert.Equal(t, int64(1), pendingCount, "failed confirmations leave the report pending")
}

func TestConfirmMatchIsExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	setRating(t, db, "alice", models.SportPool, 1200)
	setRating(t, db, "bob", models.SportPool, 1200)

	match := reportTestMatch(t, svc, "alice", "bob", models.SportPool, 8, 2)

	_, err := svc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)

	_, err = svc.ConfirmMatch(match.ID, "bob")
	assert.ErrorIs(t, err, ErrMatchNotFound, "second confirmation observes the match as gone")

	var completedCount int64
	db.Model(&models.CompletedMatch{}).Count(&completedCount)
	assert.Equal(t, int64(1), completedCount)

	var historyCount int64
	db.Model(&models.RatingHistory{}).Count(&historyCount)
	assert.Equal(t, int64(2), historyCount, "exactly one history row per participant")

	var aliceRating models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPool).First(&aliceRating).Error)
	assert.Equal(t, 1206, aliceRating.Rating, "ratings moved exactly once")
}

func TestConfirmMatchUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)

	_, err := svc.ConfirmMatch("00000000-0000-0000-0000-000000000000", "bob")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestConfirmMatchMissingPlayerLeavesReportPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")

	// "bob" was named as the opponent but has no player record.
	match := reportTestMatch(t, svc, "alice", "bob", models.SportBeerPong, 10, 6)

	_, err := svc.ConfirmMatch(match.ID, "bob")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	var pendingCount int64
	db.Model(&models.PendingMatch{}).Count(&pendingCount)
	assert.Equal(t, int64(1), pendingCount, "the report survives a failed confirmation")

	var ratingCount int64
	db.Model(&models.PlayerRating{}).Count(&ratingCount)
	assert.Zero(t, ratingCount, "no rating rows appear on failure")
}

func TestConfirmMatchWritesRatingHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	setRating(t, db, "alice", models.SportPingPong, 1300)
	setRating(t, db, "bob", models.SportPingPong, 1100)

	match := reportTestMatch(t, svc, "alice", "bob", models.SportPingPong, 11, 9)

	_, err := svc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)

	var history []models.RatingHistory
	require.NoError(t, db.Where("match_id = ?", match.ID).Order("player_handle ASC").Find(&history).Error)
	require.Len(t, history, 2)

	alice := history[0]
	bob := history[1]
	assert.Equal(t, "alice", alice.PlayerHandle)
	assert.Equal(t, 1300, alice.RatingBefore)
	assert.Equal(t, alice.RatingAfter-alice.RatingBefore, alice.RatingChange)
	assert.Equal(t, "bob", alice.OpponentHandle)
	assert.Equal(t, "bob", bob.PlayerHandle)
	assert.Equal(t, 1100, bob.RatingBefore)
	assert.Equal(t, "alice", bob.OpponentHandle)
}

func TestConfirmMatchIsolatesSports(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	setRating(t, db, "alice", models.SportPingPong, 1400)
	setRating(t, db, "alice", models.SportPool, 1250)

	match := reportTestMatch(t, svc, "alice", "bob", models.SportPool, 8, 3)

	_, err := svc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)

	var pingpong models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPingPong).First(&pingpong).Error)
	assert.Equal(t, 1400, pingpong.Rating, "other sports are untouched")

	var pool models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPool).First(&pool).Error)
	assert.NotEqual(t, 1250, pool.Rating)
}

func TestConfirmMatchTieLeavesRatingsUnchanged(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	setRating(t, db, "alice", models.SportFoosball, 1350)
	setRating(t, db, "bob", models.SportFoosball, 1180)

	match := reportTestMatch(t, svc, "alice", "bob", models.SportFoosball, 7, 7)

	_, err := svc.ConfirmMatch(match.ID, "bob")
	require.NoError(t, err)

	var aliceRating, bobRating models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportFoosball).First(&aliceRating).Error)
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "bob", models.SportFoosball).First(&bobRating).Error)
	assert.Equal(t, 1350, aliceRating.Rating)
	assert.Equal(t, 1180, bobRating.Rating)
}

func TestCancelPendingMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")

	match := reportTestMatch(t, svc, "alice", "bob", models.SportPingPong, 11, 3)

	err := svc.CancelPendingMatch(match.ID, "bob")
	assert.ErrorIs(t, err, ErrUnauthorized, "only the reporter may withdraw a report")

	require.NoError(t, svc.CancelPendingMatch(match.ID, "alice"))

	err = svc.CancelPendingMatch(match.ID, "alice")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestGetPendingMatchesSplitsDirections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	createTestPlayer(t, db, "carol")

	reportTestMatch(t, svc, "alice", "bob", models.SportPingPong, 11, 5)
	reportTestMatch(t, svc, "carol", "alice", models.SportPool, 8, 6)
	reportTestMatch(t, svc, "bob", "carol", models.SportTennis, 6, 2)

	resp, err := svc.GetPendingMatches("alice")
	require.NoError(t, err)
	require.Len(t, resp.Incoming, 1)
	require.Len(t, resp.Outgoing, 1)
	assert.Equal(t, "carol", resp.Incoming[0].ReporterHandle)
	assert.Equal(t, "bob", resp.Outgoing[0].OpponentHandle)
}

func TestGetPlayerMatchesPaginates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")

	for i := 0; i < 5; i++ {
		match := reportTestMatch(t, svc, "alice", "bob", models.SportPingPong, 11, i)
		_, err := svc.ConfirmMatch(match.ID, "bob")
		require.NoError(t, err)
	}

	page1, err := svc.GetPlayerMatches("alice", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page1.Total)
	assert.Len(t, page1.Data, 2)
	assert.Equal(t, 3, page1.TotalPages)

	page3, err := svc.GetPlayerMatches("alice", 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Data, 1)
}

func TestReportMatchRequiresOpponentHandle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")

	for _, opponent := range []string{"", "   "} {
		_, err := svc.ReportMatch("alice", models.ReportMatchRequest{
			Sport:          models.SportPool,
			OpponentHandle: opponent,
			ReporterScore:  intPtr(8),
			OpponentScore:  intPtr(3),
		})
		assert.ErrorIs(t, err, ErrMissingOpponent)
		assert.NotErrorIs(t, err, ErrSelfMatch)
	}

	var count int64
	db.Model(&models.PendingMatch{}).Count(&count)
	assert.Zero(t, count)
}

func TestConfirmMatchesSharingPlayerChainDeltas(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db, nil)
	createTestPlayer(t, db, "alice")
	createTestPlayer(t, db, "bob")
	createTestPlayer(t, db, "carol")
	setRating(t, db, "alice", models.SportPingPong, 1200)
	setRating(t, db, "bob", models.SportPingPong, 1200)
	setRating(t, db, "carol", models.SportPingPong, 1200)

	first := reportTestMatch(t, svc, "alice", "bob", models.SportPingPong, 11, 5)
	_, err := svc.ConfirmMatch(first.ID, "bob")
	require.NoError(t, err)

	second := reportTestMatch(t, svc, "carol", "alice", models.SportPingPong, 11, 5)
	_, err = svc.ConfirmMatch(second.ID, "alice")
	require.NoError(t, err)

	// Alice's second delta must be computed from 1206, not from the 1200 she
	// had before the first confirmation.
	var alice, bob, carol models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPingPong).First(&alice).Error)
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "bob", models.SportPingPong).First(&bob).Error)
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "carol", models.SportPingPong).First(&carol).Error)
	assert.Equal(t, 1200, alice.Rating)
	assert.Equal(t, 1194, bob.Rating)
	assert.Equal(t, 1206, carol.Rating)

	var aliceSecond models.RatingHistory
	require.NoError(t, db.Where("player_handle = ? AND match_id = ?", "alice", second.ID).First(&aliceSecond).Error)
	assert.Equal(t, 1206, aliceSecond.RatingBefore)
	assert.Equal(t, 1200, aliceSecond.RatingAfter)
}

func TestCompareAndSetRatingRejectsStaleValue(t *testing.T) {
	db := setupTestDB(t)
	createTestPlayer(t, db, "alice")
	setRating(t, db, "alice", models.SportPingPong, 1206)

	// A delta computed from a 1200 read must not land once the row moved on.
	ok, err := compareAndSetRating(db, "alice", models.SportPingPong, 1200, 1194)
	require.NoError(t, err)
	assert.False(t, ok)

	var row models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPingPong).First(&row).Error)
	assert.Equal(t, 1206, row.Rating)

	ok, err = compareAndSetRating(db, "alice", models.SportPingPong, 1206, 1212)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPingPong).First(&row).Error)
	assert.Equal(t, 1212, row.Rating)
}

func TestSeedRatingNeverOverwritesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	createTestPlayer(t, db, "alice")
	setRating(t, db, "alice", models.SportPingPong, 1300)

	require.NoError(t, seedRating(db, "alice", models.SportPingPong))

	var row models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPingPong).First(&row).Error)
	assert.Equal(t, 1300, row.Rating)

	var count int64
	db.Model(&models.PlayerRating{}).Where("player_handle = ?", "alice").Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, seedRating(db, "alice", models.SportPool))
	var poolRow models.PlayerRating
	require.NoError(t, db.Where("player_handle = ? AND sport = ?", "alice", models.SportPool).First(&poolRow).Error)
	assert.Equal(t, models.MutationDefaultRating, poolRow.Rating)
}
