package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"
	coreUtils "core/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateTestData creates 10 users/players, a season of confirmed matches
// with consistent ratings and history, plus pending matches and challenges.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	players, err := f.generateUsersAndPlayers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	completed, err := f.generateCompletedMatches(players)
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	if err := f.generatePendingMatches(players); err != nil {
		return fmt.Errorf("failed to generate pending matches: %w", err)
	}

	if err := f.generateChallenges(players); err != nil {
		return fmt.Errorf("failed to generate challenges: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	log.Printf("Created %d players and %d completed matches with rating history", len(players), completed)
	return nil
}

func (f *Fixtures) generateUsersAndPlayers() ([]models.Player, error) {
	handles := []string{
		"asmith", "mjones", "jchen", "slee", "tkumar",
		"cwang", "ndavis", "lbrown", "apatel", "egarcia",
	}
	names := []string{
		"Alex Smith", "Maria Jones", "Jay Chen", "Sam Lee", "Tara Kumar",
		"Chris Wang", "Nina Davis", "Liam Brown", "Asha Patel", "Elena Garcia",
	}

	var players []models.Player

	for i, handle := range handles {
		hashedPassword, err := authUtils.HashPassword("password123")
		if err != nil {
			return nil, err
		}

		user := authModels.User{
			ID:          uint(i + 1), // #nosec G115 -- force IDs 1, 2, 3, ...
			Email:       fmt.Sprintf("%s@andrew.cmu.edu", handle),
			Handle:      handle,
			DisplayName: names[i],
			Password:    hashedPassword,
			Enabled:     true,
			Roles:       authModels.GetDefaultRoles(),
		}
		if i == 0 {
			user.AddRole(authModels.RoleAdmin)
		}

		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}

		player := models.Player{
			Handle:      handle,
			UserID:      user.ID,
			DisplayName: names[i],
		}
		if err := f.db.Create(&player).Error; err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, nil
}

// generateCompletedMatches plays out random matches through the real rating
// math so fixture ratings, history and match records agree with each other.
func (f *Fixtures) generateCompletedMatches(players []models.Player) (int, error) {
	ratings := make(map[string]map[string]int)
	for _, p := range players {
		ratings[p.Handle] = make(map[string]int)
	}

	count := 0
	start := time.Now().AddDate(0, -2, 0)

	for i := 0; i < 60; i++ {
		a := rand.Intn(len(players)) // #nosec G404
		b := rand.Intn(len(players)) // #nosec G404
		if a == b {
			continue
		}
		sport := models.Sports[rand.Intn(len(models.Sports))] // #nosec G404

		scoreA := rand.Intn(11) + 1 // #nosec G404
		scoreB := rand.Intn(11) + 1 // #nosec G404

		handleA := players[a].Handle
		handleB := players[b].Handle

		ratingA, ok := ratings[handleA][sport]
		if !ok {
			ratingA = models.MutationDefaultRating
		}
		ratingB, ok := ratings[handleB][sport]
		if !ok {
			ratingB = models.MutationDefaultRating
		}

		newA, newB, err := coreUtils.UpdateRatings(ratingA, ratingB, scoreA, scoreB, coreUtils.DefaultKFactor)
		if err != nil {
			return count, err
		}
		ratings[handleA][sport] = newA
		ratings[handleB][sport] = newB

		playedAt := start.Add(time.Duration(i) * 17 * time.Hour)
		matchID := uuid.NewString()

		match := models.CompletedMatch{
			ID:             matchID,
			Sport:          sport,
			ReporterHandle: handleA,
			ReporterScore:  scoreA,
			OpponentHandle: handleB,
			OpponentScore:  scoreB,
			Confirmed:      true,
			CreatedAt:      playedAt,
			ConfirmedAt:    playedAt.Add(30 * time.Minute),
		}
		if err := f.db.Create(&match).Error; err != nil {
			return count, err
		}

		history := []models.RatingHistory{
			{
				PlayerHandle:   handleA,
				MatchID:        matchID,
				Sport:          sport,
				RatingBefore:   ratingA,
				RatingAfter:    newA,
				RatingChange:   newA - ratingA,
				OpponentHandle: handleB,
				CreatedAt:      match.ConfirmedAt,
			},
			{
				PlayerHandle:   handleB,
				MatchID:        matchID,
				Sport:          sport,
				RatingBefore:   ratingB,
				RatingAfter:    newB,
				RatingChange:   newB - ratingB,
				OpponentHandle: handleA,
				CreatedAt:      match.ConfirmedAt,
			},
		}
		if err := f.db.Create(&history).Error; err != nil {
			return count, err
		}

		count++
	}

	for handle, bySport := range ratings {
		for sport, rating := range bySport {
			row := models.PlayerRating{
				PlayerHandle: handle,
				Sport:        sport,
				Rating:       rating,
			}
			if err := f.db.Create(&row).Error; err != nil {
				return count, err
			}
		}
	}

	return count, nil
}

func (f *Fixtures) generatePendingMatches(players []models.Player) error {
	for i := 0; i < 5; i++ {
		a := rand.Intn(len(players)) // #nosec G404
		b := (a + i + 1) % len(players)

		match := models.PendingMatch{
			ID:             uuid.NewString(),
			Sport:          models.Sports[rand.Intn(len(models.Sports))], // #nosec G404
			ReporterHandle: players[a].Handle,
			ReporterScore:  rand.Intn(11) + 1, // #nosec G404
			OpponentHandle: players[b].Handle,
			OpponentScore:  rand.Intn(11) + 1, // #nosec G404
			CreatedAt:      time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour), // #nosec G404
		}
		if err := f.db.Create(&match).Error; err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixtures) generateChallenges(players []models.Player) error {
	place := "UC game room"
	dare := "loser buys lunch"

	for i := 0; i < 4; i++ {
		a := rand.Intn(len(players)) // #nosec G404
		b := (a + i + 1) % len(players)
		sport := models.Sports[rand.Intn(len(models.Sports))] // #nosec G404

		challenge := models.Challenge{
			ID:               uuid.NewString(),
			ChallengerHandle: players[a].Handle,
			OpponentHandle:   players[b].Handle,
			Sport:            sport,
			Status:           models.ChallengeStatusPending,
			Place:            &place,
			Message:          fmt.Sprintf("%s has challenged you to a %s match!", players[a].Handle, sport),
			CreatedAt:        time.Now().Add(-time.Duration(i*6) * time.Hour),
		}
		if i == 0 {
			challenge.Dare = &dare
			challenge.Message += fmt.Sprintf(" Loser has to: %s", dare)
		}

		if err := f.db.Create(&challenge).Error; err != nil {
			return err
		}
	}
	return nil
}

// ClearAllData wipes every fixture-managed table
func (f *Fixtures) ClearAllData() error {
	tables := []string{
		"rating_history",
		"challenges",
		"pending_matches",
		"completed_matches",
		"player_ratings",
		"players",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		if err := f.db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return nil
}
