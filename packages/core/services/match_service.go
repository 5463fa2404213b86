package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"core/cache"
	"core/models"
	"core/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchService owns the two-phase match lifecycle: a reported result sits in
// pending_matches until the designated opponent confirms it, at which point
// the record moves to completed_matches and both ratings are recomputed in
// the same transaction.
type MatchService struct {
	db    *gorm.DB
	cache cache.LeaderboardCache // may be nil
}

func NewMatchService(db *gorm.DB, leaderboardCache cache.LeaderboardCache) *MatchService {
	return &MatchService{
		db:    db,
		cache: leaderboardCache,
	}
}

// ReportMatch records a played result as a pending match. The reporter
// identity comes from the authenticated principal, never from the payload.
// The opponent's player record is not required to exist yet; a missing
// opponent surfaces at confirmation time instead.
func (s *MatchService) ReportMatch(reporterHandle string, req models.ReportMatchRequest) (*models.PendingMatch, error) {
	if !models.IsValidSport(req.Sport) {
		return nil, ErrInvalidSport
	}

	opponentHandle := strings.ToLower(strings.TrimSpace(req.OpponentHandle))
	if opponentHandle == "" {
		return nil, ErrMissingOpponent
	}
	if opponentHandle == reporterHandle {
		return nil, ErrSelfMatch
	}

	if *req.ReporterScore < 0 || *req.OpponentScore < 0 {
		return nil, ErrInvalidScore
	}

	match := models.PendingMatch{
		ID:             uuid.NewString(),
		Sport:          req.Sport,
		ReporterHandle: reporterHandle,
		ReporterScore:  *req.ReporterScore,
		OpponentHandle: opponentHandle,
		OpponentScore:  *req.OpponentScore,
		Confirmed:      false,
		CreatedAt:      time.Now(),
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// ConfirmMatch is the sole trigger for rating mutation. Only the designated
// opponent may call it. The whole sequence runs in one transaction: the
// conditional delete of the pending row is the linearization point, so two
// concurrent confirmations of the same match produce exactly one
// CompletedMatch and one rating delta; the loser observes ErrMatchNotFound.
// Confirmations of different matches that share a player are serialized by
// the conditional rating writes in applyRatingUpdates.
func (s *MatchService) ConfirmMatch(matchID, confirmerHandle string) (*models.CompletedMatch, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var pending models.PendingMatch
	if err := tx.Where("id = ?", matchID).First(&pending).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if pending.OpponentHandle != confirmerHandle {
		tx.Rollback()
		return nil, ErrUnauthorized
	}

	// Only the caller that removes the still-present pending row may apply
	// rating writes.
	res := tx.Where("id = ?", matchID).Delete(&models.PendingMatch{})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrMatchNotFound
	}

	// Both participants must already have player records; confirmation never
	// auto-creates one.
	for _, handle := range []string{pending.ReporterHandle, pending.OpponentHandle} {
		var player models.Player
		if err := tx.Where("handle = ?", handle).First(&player).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, err
		}
	}

	reporterRating, opponentRating, newReporterRating, newOpponentRating, err := applyRatingUpdates(tx, &pending)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()

	history := []models.RatingHistory{
		{
			PlayerHandle:   pending.ReporterHandle,
			MatchID:        pending.ID,
			Sport:          pending.Sport,
			RatingBefore:   reporterRating,
			RatingAfter:    newReporterRating,
			RatingChange:   newReporterRating - reporterRating,
			OpponentHandle: pending.OpponentHandle,
			CreatedAt:      now,
		},
		{
			PlayerHandle:   pending.OpponentHandle,
			MatchID:        pending.ID,
			Sport:          pending.Sport,
			RatingBefore:   opponentRating,
			RatingAfter:    newOpponentRating,
			RatingChange:   newOpponentRating - opponentRating,
			OpponentHandle: pending.ReporterHandle,
			CreatedAt:      now,
		},
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	completed := models.CompletedMatch{
		ID:             pending.ID,
		Sport:          pending.Sport,
		ReporterHandle: pending.ReporterHandle,
		ReporterScore:  pending.ReporterScore,
		OpponentHandle: pending.OpponentHandle,
		OpponentScore:  pending.OpponentScore,
		Confirmed:      true,
		CreatedAt:      pending.CreatedAt,
		ConfirmedAt:    now,
	}
	if err := tx.Create(&completed).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Best effort; a stale leaderboard expires on its own TTL.
	if s.cache != nil {
		if err := s.cache.Invalidate(context.Background(), pending.Sport); err != nil {
			log.Printf("Failed to invalidate leaderboard cache for %s: %v", pending.Sport, err)
		}
	}

	return &completed, nil
}

// CancelPendingMatch removes a pending report. Only the reporter may
// withdraw a result that has not been confirmed yet.
func (s *MatchService) CancelPendingMatch(matchID, requesterHandle string) error {
	var pending models.PendingMatch
	if err := s.db.Where("id = ?", matchID).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	if pending.ReporterHandle != requesterHandle {
		return ErrUnauthorized
	}

	res := s.db.Where("id = ?", matchID).Delete(&models.PendingMatch{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// DeletePendingMatch is the admin variant of CancelPendingMatch, without the
// reporter check.
func (s *MatchService) DeletePendingMatch(matchID string) error {
	res := s.db.Where("id = ?", matchID).Delete(&models.PendingMatch{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// GetPendingMatches returns the reports awaiting the player's confirmation
// and the player's own unconfirmed reports.
func (s *MatchService) GetPendingMatches(handle string) (*models.PendingMatchesResponse, error) {
	var incoming []models.PendingMatch
	if err := s.db.Where("opponent_handle = ?", handle).
		Order("created_at DESC").
		Find(&incoming).Error; err != nil {
		return nil, err
	}

	var outgoing []models.PendingMatch
	if err := s.db.Where("reporter_handle = ?", handle).
		Order("created_at DESC").
		Find(&outgoing).Error; err != nil {
		return nil, err
	}

	return &models.PendingMatchesResponse{
		Incoming: incoming,
		Outgoing: outgoing,
	}, nil
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.CompletedMatch, error) {
	var matches []models.CompletedMatch

	result := s.db.Order("confirmed_at DESC").
		Limit(limit).
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

// GetPlayerMatches pages through a player's completed matches, newest first.
func (s *MatchService) GetPlayerMatches(handle string, page, pageSize int) (*models.PaginatedMatchResponse, error) {
	var matches []models.CompletedMatch
	var total int64

	baseQuery := s.db.Model(&models.CompletedMatch{}).
		Where("reporter_handle = ? OR opponent_handle = ?", handle, handle)

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := baseQuery.Order("confirmed_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ratingWriteRetries bounds the compare-and-set loop in applyRatingUpdates.
// Contention on a single (player, sport) row is rare enough that hitting the
// bound means something is pathologically wrong, not that the caller lost a
// fair race three times.
const ratingWriteRetries = 3

// applyRatingUpdates recomputes and persists both ratings for a pending
// match. Confirmations of two different matches can share a player, so a
// plain read-then-overwrite would let one confirmation erase the other's
// delta. Instead each write is conditional on the rating value that was read;
// when the row moved underneath us the attempt is rolled back to a savepoint
// and recomputed from the current values.
func applyRatingUpdates(tx *gorm.DB, pending *models.PendingMatch) (reporterBefore, opponentBefore, reporterAfter, opponentAfter int, err error) {
	if err = seedRating(tx, pending.ReporterHandle, pending.Sport); err != nil {
		return
	}
	if err = seedRating(tx, pending.OpponentHandle, pending.Sport); err != nil {
		return
	}

	for attempt := 0; attempt < ratingWriteRetries; attempt++ {
		if err = tx.SavePoint("rating_writes").Error; err != nil {
			return
		}

		reporterBefore, err = currentRating(tx, pending.ReporterHandle, pending.Sport)
		if err != nil {
			return
		}
		opponentBefore, err = currentRating(tx, pending.OpponentHandle, pending.Sport)
		if err != nil {
			return
		}

		reporterAfter, opponentAfter, err = utils.UpdateRatings(
			reporterBefore,
			opponentBefore,
			pending.ReporterScore,
			pending.OpponentScore,
			utils.DefaultKFactor,
		)
		if err != nil {
			return
		}

		var ok bool
		ok, err = compareAndSetRating(tx, pending.ReporterHandle, pending.Sport, reporterBefore, reporterAfter)
		if err != nil {
			return
		}
		if ok {
			ok, err = compareAndSetRating(tx, pending.OpponentHandle, pending.Sport, opponentBefore, opponentAfter)
			if err != nil {
				return
			}
		}
		if ok {
			return
		}
		if err = tx.RollbackTo("rating_writes").Error; err != nil {
			return
		}
	}

	err = ErrRatingConflict
	return
}

// seedRating creates the (player, sport) row at the 1200 mutation default
// when it does not exist yet. The insert is conflict-tolerant so two
// first-time confirmations for the same pair cannot trip the unique index.
func seedRating(tx *gorm.DB, handle, sport string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.PlayerRating{
		PlayerHandle: handle,
		Sport:        sport,
		Rating:       models.MutationDefaultRating,
	}).Error
}

// currentRating reads the (player, sport) rating inside the confirmation
// transaction, defaulting to 1200 for a row that is still missing. The read
// side's 1000 display default must never leak into this path.
func currentRating(tx *gorm.DB, handle, sport string) (int, error) {
	var row models.PlayerRating
	err := tx.Where("player_handle = ? AND sport = ?", handle, sport).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MutationDefaultRating, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Rating, nil
}

// compareAndSetRating writes the new rating only if the row still holds the
// value the caller read. A false return means a concurrent confirmation got
// there first and the delta must be recomputed.
func compareAndSetRating(tx *gorm.DB, handle, sport string, from, to int) (bool, error) {
	res := tx.Model(&models.PlayerRating{}).
		Where("player_handle = ? AND sport = ? AND rating = ?", handle, sport, from).
		Update("rating", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
