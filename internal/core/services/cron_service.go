package services

import (
	"context"
	"time"

	"kpi-dashboard/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultTokenCleanupSchedule runs the refresh token purge daily at 03:00
const DefaultTokenCleanupSchedule = "0 3 * * *"

const cleanupTimeout = time.Minute

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	schedule         string
	log              logrus.FieldLogger
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, schedule string, log logrus.FieldLogger) *CronService {
	if schedule == "" {
		schedule = DefaultTokenCleanupSchedule
	}
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		schedule:         schedule,
		log:              log,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runTokenCleanup); err != nil {
		return err
	}
	s.cron.Start()

	s.log.WithField("schedule", s.schedule).Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Cron service stopped")
}

func (s *CronService) runTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if _, err := s.CleanupTokens(ctx); err != nil {
		s.log.WithError(err).Error("Refresh token cleanup failed")
	}
}

// CleanupTokens deletes expired and revoked refresh tokens
func (s *CronService) CleanupTokens(ctx context.Context) (int64, error) {
	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}

	s.log.WithField("deleted", deleted).Info("Refresh token cleanup finished")
	return deleted, nil
}
