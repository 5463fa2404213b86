package services

import (
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string {
	return &v
}

func TestCreateChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	challenge, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "Bob",
		Sport:          models.SportFoosball,
		Place:          strPtr("student lounge"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, challenge.ID)
	assert.Equal(t, "bob", challenge.OpponentHandle)
	assert.Equal(t, models.ChallengeStatusPending, challenge.Status)
	assert.Equal(t, "alice has challenged you to a foosball match!", challenge.Message)
	require.NotNil(t, challenge.Place)
	assert.Equal(t, "student lounge", *challenge.Place)
	assert.Nil(t, challenge.ScheduledDate)
	assert.Nil(t, challenge.Dare)
}

func TestCreateChallengeDareAppearsInMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	challenge, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          models.SportPool,
		Dare:           strPtr("buy winner a coffee"),
	})
	require.NoError(t, err)

	assert.Equal(t, "alice has challenged you to a pool match! Loser has to: buy winner a coffee", challenge.Message)
}

func TestCreateChallengeRejectsSelfAndUnknownSport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	_, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "ALICE",
		Sport:          models.SportTennis,
	})
	assert.ErrorIs(t, err, ErrSelfChallenge)

	_, err = svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          "chess",
	})
	assert.ErrorIs(t, err, ErrInvalidSport)
}

func TestAcceptChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	challenge, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          models.SportPingPong,
	})
	require.NoError(t, err)

	_, err = svc.AcceptChallenge(challenge.ID, "alice")
	assert.ErrorIs(t, err, ErrUnauthorized, "the challenger cannot accept their own challenge")

	accepted, err := svc.AcceptChallenge(challenge.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	assert.Nil(t, accepted.DeclinedAt)

	_, err = svc.AcceptChallenge(challenge.ID, "bob")
	assert.ErrorIs(t, err, ErrChallengeNotPending, "a settled challenge cannot transition again")
}

func TestDeclineChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	challenge, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          models.SportBeerPong,
	})
	require.NoError(t, err)

	declined, err := svc.DeclineChallenge(challenge.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeStatusDeclined, declined.Status)
	require.NotNil(t, declined.DeclinedAt)
	assert.Nil(t, declined.AcceptedAt)

	_, err = svc.AcceptChallenge(challenge.ID, "bob")
	assert.ErrorIs(t, err, ErrChallengeNotPending, "declines are final")
}

func TestCancelChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	challenge, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          models.SportPool,
	})
	require.NoError(t, err)

	err = svc.CancelChallenge(challenge.ID, "bob")
	assert.ErrorIs(t, err, ErrUnauthorized, "only the challenger may withdraw")

	require.NoError(t, svc.CancelChallenge(challenge.ID, "alice"))

	err = svc.CancelChallenge(challenge.ID, "alice")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestCancelChallengeAcceptedIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	challenge, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          models.SportTennis,
	})
	require.NoError(t, err)

	_, err = svc.AcceptChallenge(challenge.ID, "bob")
	require.NoError(t, err)

	err = svc.CancelChallenge(challenge.ID, "alice")
	assert.ErrorIs(t, err, ErrChallengeNotPending)
}

func TestListChallengesSplitsDirections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	_, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "bob",
		Sport:          models.SportPingPong,
	})
	require.NoError(t, err)
	_, err = svc.CreateChallenge("carol", models.CreateChallengeRequest{
		OpponentHandle: "alice",
		Sport:          models.SportPool,
	})
	require.NoError(t, err)

	resp, err := svc.ListChallenges("alice")
	require.NoError(t, err)
	require.Len(t, resp.Incoming, 1)
	require.Len(t, resp.Outgoing, 1)
	assert.Equal(t, "carol", resp.Incoming[0].ChallengerHandle)
	assert.Equal(t, "bob", resp.Outgoing[0].OpponentHandle)
}

func TestCreateChallengeRequiresOpponentHandle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChallengeService(db, nil)

	_, err := svc.CreateChallenge("alice", models.CreateChallengeRequest{
		OpponentHandle: "  ",
		Sport:          models.SportTennis,
	})
	assert.ErrorIs(t, err, ErrMissingOpponent)

	var count int64
	db.Model(&models.Challenge{}).Count(&count)
	assert.Zero(t, count)
}
