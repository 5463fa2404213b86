package services

import "errors"

// Sentinel errors for the match and challenge workflows. Handlers map these
// to distinct HTTP statuses; anything else is a persistence failure and is
// propagated as-is.
var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrUnauthorized        = errors.New("action not allowed for this user")
	ErrSelfMatch           = errors.New("reporter and opponent must be different players")
	ErrSelfChallenge       = errors.New("challenger and opponent must be different players")
	ErrMissingOpponent     = errors.New("opponent handle is required")
	ErrRatingConflict      = errors.New("ratings changed concurrently, retry the confirmation")
	ErrInvalidSport        = errors.New("unknown sport")
	ErrInvalidScore        = errors.New("scores must be non-negative")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeNotPending = errors.New("challenge is not pending")
)
