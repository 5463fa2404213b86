package cron

import (
	"log"

	"core/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron           *cron.Cron
	cleanupService *services.CleanupService
}

func NewScheduler(cleanupService *services.CleanupService) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:           c,
		cleanupService: cleanupService,
	}
}

// Start registers and starts all scheduled jobs.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Sweep stale pending matches every night at 02:00.
	_, err := s.cron.AddFunc("0 0 2 * * *", s.runCleanup)
	if err != nil {
		log.Printf("Error scheduling pending match cleanup: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runCleanup() {
	log.Println("Running pending match cleanup job...")

	expired, err := s.cleanupService.GetExpiredMatchesCount()
	if err != nil {
		log.Printf("Error checking expired matches count: %v", err)
		return
	}

	if expired == 0 {
		log.Println("No stale pending matches to expire")
		return
	}

	if _, err := s.cleanupService.ExpirePendingMatches(); err != nil {
		log.Printf("Error during pending match cleanup: %v", err)
		return
	}

	log.Println("Pending match cleanup job completed successfully")
}

// RunNow manually triggers the cleanup job (useful for testing).
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering pending match cleanup...")
	s.runCleanup()
}
