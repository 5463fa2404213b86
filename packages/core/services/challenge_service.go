package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChallengeService manages pre-match invitations. Challenges are purely
// upstream of match reporting and never touch ratings.
type ChallengeService struct {
	db       *gorm.DB
	notifier ChallengeNotifier // may be nil
}

func NewChallengeService(db *gorm.DB, notifier ChallengeNotifier) *ChallengeService {
	return &ChallengeService{
		db:       db,
		notifier: notifier,
	}
}

func (s *ChallengeService) CreateChallenge(challengerHandle string, req models.CreateChallengeRequest) (*models.Challenge, error) {
	if !models.IsValidSport(req.Sport) {
		return nil, ErrInvalidSport
	}

	opponentHandle := strings.ToLower(strings.TrimSpace(req.OpponentHandle))
	if opponentHandle == "" {
		return nil, ErrMissingOpponent
	}
	if opponentHandle == challengerHandle {
		return nil, ErrSelfChallenge
	}

	message := fmt.Sprintf("%s has challenged you to a %s match!", challengerHandle, req.Sport)
	if req.Dare != nil && *req.Dare != "" {
		message += fmt.Sprintf(" Loser has to: %s", *req.Dare)
	}

	challenge := models.Challenge{
		ID:               uuid.NewString(),
		ChallengerHandle: challengerHandle,
		OpponentHandle:   opponentHandle,
		Sport:            req.Sport,
		Status:           models.ChallengeStatusPending,
		ScheduledDate:    req.ScheduledDate,
		ScheduledTime:    req.ScheduledTime,
		Place:            req.Place,
		Dare:             req.Dare,
		Message:          message,
		CreatedAt:        time.Now(),
	}

	if err := s.db.Create(&challenge).Error; err != nil {
		return nil, err
	}

	// Notification is best effort; the challenge row is the source of truth.
	if s.notifier != nil {
		if err := s.notifier.SendChallengeNotification(opponentHandle, message); err != nil {
			log.Printf("Failed to notify %s about challenge %s: %v", opponentHandle, challenge.ID, err)
		}
	}

	return &challenge, nil
}

// AcceptChallenge may only be performed by the designated opponent, and only
// while the challenge is still pending.
func (s *ChallengeService) AcceptChallenge(challengeID, handle string) (*models.Challenge, error) {
	return s.transition(challengeID, handle, models.ChallengeStatusAccepted)
}

func (s *ChallengeService) DeclineChallenge(challengeID, handle string) (*models.Challenge, error) {
	return s.transition(challengeID, handle, models.ChallengeStatusDeclined)
}

func (s *ChallengeService) transition(challengeID, handle, status string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.db.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	if challenge.OpponentHandle != handle {
		return nil, ErrUnauthorized
	}
	if challenge.Status != models.ChallengeStatusPending {
		return nil, ErrChallengeNotPending
	}

	now := time.Now()
	challenge.Status = status
	switch status {
	case models.ChallengeStatusAccepted:
		challenge.AcceptedAt = &now
	case models.ChallengeStatusDeclined:
		challenge.DeclinedAt = &now
	}

	if err := s.db.Save(&challenge).Error; err != nil {
		return nil, err
	}

	return &challenge, nil
}

// CancelChallenge deletes a still-pending challenge; only the challenger may
// withdraw it.
func (s *ChallengeService) CancelChallenge(challengeID, handle string) error {
	var challenge models.Challenge
	if err := s.db.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return err
	}

	if challenge.ChallengerHandle != handle {
		return ErrUnauthorized
	}
	if challenge.Status != models.ChallengeStatusPending {
		return ErrChallengeNotPending
	}

	return s.db.Delete(&challenge).Error
}

func (s *ChallengeService) ListChallenges(handle string) (*models.ChallengeListResponse, error) {
	var incoming []models.Challenge
	if err := s.db.Where("opponent_handle = ?", handle).
		Order("created_at DESC").
		Find(&incoming).Error; err != nil {
		return nil, err
	}

	var outgoing []models.Challenge
	if err := s.db.Where("challenger_handle = ?", handle).
		Order("created_at DESC").
		Find(&outgoing).Error; err != nil {
		return nil, err
	}

	return &models.ChallengeListResponse{
		Incoming: incoming,
		Outgoing: outgoing,
	}, nil
}
