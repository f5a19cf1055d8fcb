package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/services"
)

// Scheduler produces a daily insight snapshot for every user who logged a
// mood in the last week, so dashboards have fresh data without waiting for a
// request.
type Scheduler struct {
	log         *logger.Logger
	cron        *cron.Cron
	moodRepo    repos.MoodRepo
	insightsSvc services.InsightsService
}

func New(baseLog *logger.Logger, moodRepo repos.MoodRepo, insightsSvc services.InsightsService) *Scheduler {
	return &Scheduler{
		log:         baseLog.With("component", "Scheduler"),
		cron:        cron.New(),
		moodRepo:    moodRepo,
		insightsSvc: insightsSvc,
	}
}

// Start registers the snapshot job under spec (cron syntax, e.g. "@daily")
// and launches the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSnapshot); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Insight snapshot job scheduled", "spec", spec)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -7)
	userIDs, err := s.moodRepo.ActiveUserIDs(ctx, nil, since)
	if err != nil {
		s.log.Error("Failed to list active users for snapshot", "error", err)
		return
	}

	failures := 0
	for _, userID := range userIDs {
		if _, err := s.insightsSvc.Generate(ctx, userID); err != nil {
			failures++
			s.log.Warn("Snapshot generation failed for user", "user_id", userID, "error", err)
		}
	}
	s.log.Info("Insight snapshot run finished", "users", len(userIDs), "failures", failures)
}
