package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	statsService  *services.StatsService
	matchService  *services.MatchService
}

func NewPlayerHandler(playerService *services.PlayerService, statsService *services.StatsService, matchService *services.MatchService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		statsService:  statsService,
		matchService:  matchService,
	}
}

// GetPlayer retrieves a player's public profile
// @Summary Get a player profile
// @Description Get a player's profile with derived statistics (total matches, wins, win rate, best sport) and per-sport ratings
// @Tags players
// @Produce json
// @Param handle path string true "Player handle"
// @Success 200 {object} models.PlayerStats
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{handle} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	handle := strings.ToLower(c.Param("handle"))

	stats, err := h.statsService.GetPlayerStats(handle)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPlayerMatches retrieves a player's completed matches
// @Summary Get a player's match history
// @Description Get a player's completed matches, newest first, paginated
// @Tags players
// @Produce json
// @Param handle path string true "Player handle"
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{handle}/matches [get]
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	handle := strings.ToLower(c.Param("handle"))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	result, err := h.matchService.GetPlayerMatches(handle, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRatingHistory retrieves a player's rating trail
// @Summary Get a player's rating history
// @Description Get every rating change of a player, oldest first
// @Tags players
// @Produce json
// @Param handle path string true "Player handle"
// @Success 200 {array} models.RatingHistory
// @Failure 500 {object} map[string]string
// @Router /players/{handle}/rating-history [get]
func (h *PlayerHandler) GetRatingHistory(c *gin.Context) {
	handle := strings.ToLower(c.Param("handle"))

	history, err := h.playerService.GetRatingHistory(handle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
