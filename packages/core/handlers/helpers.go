package handlers

import (
	"errors"
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy to HTTP statuses.
// Every branch keeps the concrete reason; nothing collapses into a generic
// "failed".
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
	case errors.Is(err, services.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
	case errors.Is(err, services.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
	case errors.Is(err, services.ErrRatingConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSelfMatch),
		errors.Is(err, services.ErrSelfChallenge),
		errors.Is(err, services.ErrMissingOpponent),
		errors.Is(err, services.ErrInvalidSport),
		errors.Is(err, services.ErrInvalidScore),
		errors.Is(err, services.ErrChallengeNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
