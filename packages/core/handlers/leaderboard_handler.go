package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard retrieves the leaderboard for one sport
// @Summary Get a sport leaderboard
// @Description Get every player ranked by rating for one sport, highest first. Players who never played the sport appear at the 1000 display default.
// @Tags leaderboard
// @Produce json
// @Param sport path string true "Sport tag" Enums(pingpong,pool,foosball,basketball1v1,tennis,beerpong)
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leaderboard/{sport} [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.leaderboardService.GetLeaderboard(c.Param("sport"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetSports lists the playable sports
// @Summary List sports
// @Description Get the closed set of sport tags
// @Tags leaderboard
// @Produce json
// @Success 200 {array} string
// @Router /sports [get]
func (h *LeaderboardHandler) GetSports(c *gin.Context) {
	c.JSON(http.StatusOK, models.Sports)
}
