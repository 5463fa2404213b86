package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// CreateChallenge sends a challenge to another player
// @Summary Send a challenge
// @Description Challenge another player to a match, optionally with date, time, place and a dare for the loser
// @Tags challenges
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param challenge body models.CreateChallengeRequest true "Challenge details"
// @Success 201 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.challengeService.CreateChallenge(handle, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

// ListChallenges lists the current player's challenges
// @Summary Get my challenges
// @Description Get incoming and outgoing challenges for the current player
// @Tags challenges
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.ChallengeListResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges [get]
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	challenges, err := h.challengeService.ListChallenges(handle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve challenges"})
		return
	}

	c.JSON(http.StatusOK, challenges)
}

// AcceptChallenge accepts an incoming challenge
// @Summary Accept a challenge
// @Description Accept a pending challenge. Only the challenged player may accept.
// @Tags challenges
// @Security BearerAuth
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/accept [patch]
func (h *ChallengeHandler) AcceptChallenge(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	challenge, err := h.challengeService.AcceptChallenge(c.Param("id"), handle)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// DeclineChallenge declines an incoming challenge
// @Summary Decline a challenge
// @Description Decline a pending challenge. Only the challenged player may decline.
// @Tags challenges
// @Security BearerAuth
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/decline [patch]
func (h *ChallengeHandler) DeclineChallenge(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	challenge, err := h.challengeService.DeclineChallenge(c.Param("id"), handle)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// CancelChallenge withdraws an outgoing challenge
// @Summary Cancel a challenge
// @Description Delete a still-pending challenge. Only the challenger may cancel.
// @Tags challenges
// @Security BearerAuth
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /challenges/{id} [delete]
func (h *ChallengeHandler) CancelChallenge(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.challengeService.CancelChallenge(c.Param("id"), handle); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge cancelled"})
}
