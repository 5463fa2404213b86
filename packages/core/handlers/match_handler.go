package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// ReportMatch reports a played match as pending
// @Summary Report a match
// @Description Report a played match result. The match stays pending until the opponent confirms it; no rating changes happen yet.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.ReportMatchRequest true "Match result"
// @Success 201 {object} models.PendingMatch
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) ReportMatch(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.ReportMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.ReportMatch(handle, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// ConfirmMatch confirms a pending match
// @Summary Confirm a pending match
// @Description Confirm a reported result. Only the designated opponent may confirm; this recomputes both players' ratings and moves the match to completed.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} models.CompletedMatch
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/confirm [post]
func (h *MatchHandler) ConfirmMatch(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	match, err := h.matchService.ConfirmMatch(c.Param("id"), handle)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// CancelMatch withdraws a pending match
// @Summary Cancel a pending match
// @Description Delete an unconfirmed report. The reporter may withdraw their own report; admins may delete any pending match.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) CancelMatch(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var err error
	if authMiddleware.HasRole(c, "admin") {
		err = h.matchService.DeletePendingMatch(c.Param("id"))
	} else {
		err = h.matchService.CancelPendingMatch(c.Param("id"), handle)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pending match cancelled"})
}

// GetPendingMatches lists pending matches for the current player
// @Summary Get my pending matches
// @Description Get reports awaiting my confirmation (incoming) and my own unconfirmed reports (outgoing)
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.PendingMatchesResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/pending [get]
func (h *MatchHandler) GetPendingMatches(c *gin.Context) {
	handle, exists := authMiddleware.GetUserHandle(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	pending, err := h.matchService.GetPendingMatches(handle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending matches"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// GetRecentMatches retrieves the N most recently confirmed matches
// @Summary Get recent matches
// @Description Get the N most recently confirmed matches (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.CompletedMatch
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	// Cap the limit to prevent excessive queries
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}
