package core

import (
	"core/cache"
	"core/cron"
	"core/handlers"
	"core/services"
	"log"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	PlayerHandler      *handlers.PlayerHandler
	PlayerService      *services.PlayerService
	MatchHandler       *handlers.MatchHandler
	MatchService       *services.MatchService
	ChallengeHandler   *handlers.ChallengeHandler
	ChallengeService   *services.ChallengeService
	LeaderboardHandler *handlers.LeaderboardHandler
	LeaderboardService *services.LeaderboardService
	StatsHandler       *handlers.StatsHandler
	StatsService       *services.StatsService
	CleanupService     *services.CleanupService
	Scheduler          *cron.Scheduler
	db                 *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	leaderboardCache := cache.NewLeaderboardCacheFromEnv()

	playerService := services.NewPlayerService(db)

	matchService := services.NewMatchService(db, leaderboardCache)
	matchHandler := handlers.NewMatchHandler(matchService)

	challengeService := services.NewChallengeService(db, services.NewChallengeNotifier())
	challengeHandler := handlers.NewChallengeHandler(challengeService)

	leaderboardService := services.NewLeaderboardService(db, leaderboardCache)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	playerHandler := handlers.NewPlayerHandler(playerService, statsService, matchService)

	// Stale pending reports expire on a schedule instead of lingering forever.
	cleanupService := services.NewCleanupService(db)
	scheduler := cron.NewScheduler(cleanupService)

	return &Module{
		PlayerHandler:      playerHandler,
		PlayerService:      playerService,
		MatchHandler:       matchHandler,
		MatchService:       matchService,
		ChallengeHandler:   challengeHandler,
		ChallengeService:   challengeService,
		LeaderboardHandler: leaderboardHandler,
		LeaderboardService: leaderboardService,
		StatsHandler:       statsHandler,
		StatsService:       statsService,
		CleanupService:     cleanupService,
		Scheduler:          scheduler,
		db:                 db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.GET("/:handle", m.PlayerHandler.GetPlayer)
		players.GET("/:handle/matches", m.PlayerHandler.GetPlayerMatches)
		players.GET("/:handle/rating-history", m.PlayerHandler.GetRatingHistory)
	}

	matches := r.Group("/matches")
	{
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/pending", authMiddleware.JWTMiddleware(), m.MatchHandler.GetPendingMatches)
		matches.POST("", authMiddleware.JWTMiddleware(), m.MatchHandler.ReportMatch)
		matches.POST("/:id/confirm", authMiddleware.JWTMiddleware(), m.MatchHandler.ConfirmMatch)
		matches.DELETE("/:id", authMiddleware.JWTMiddleware(), m.MatchHandler.CancelMatch)
	}

	challenges := r.Group("/challenges")
	{
		challenges.GET("", authMiddleware.JWTMiddleware(), m.ChallengeHandler.ListChallenges)
		challenges.POST("", authMiddleware.JWTMiddleware(), m.ChallengeHandler.CreateChallenge)
		challenges.PATCH("/:id/accept", authMiddleware.JWTMiddleware(), m.ChallengeHandler.AcceptChallenge)
		challenges.PATCH("/:id/decline", authMiddleware.JWTMiddleware(), m.ChallengeHandler.DeclineChallenge)
		challenges.DELETE("/:id", authMiddleware.JWTMiddleware(), m.ChallengeHandler.CancelChallenge)
	}

	r.GET("/leaderboard/:sport", m.LeaderboardHandler.GetLeaderboard)
	r.GET("/sports", m.LeaderboardHandler.GetSports)
	r.GET("/stats", m.StatsHandler.GetStats)

	// Admin surface kept separate so the regular routes stay public-shaped.
	admin := r.Group("/admin", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin))
	{
		admin.DELETE("/matches/:id", m.MatchHandler.CancelMatch)
	}
}

// StartScheduler starts the cron scheduler for pending-match expiry
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunCleanupNow manually triggers pending-match expiry (useful for testing)
func (m *Module) RunCleanupNow() {
	log.Println("Manually triggering pending-match cleanup...")
	m.Scheduler.RunNow()
}
