package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type MoodService interface {
	// Record stores a mood check-in. value must be on the 1-5 scale. A nil
	// date means now.
	Record(ctx context.Context, userID uuid.UUID, value int, note, source string, date *time.Time) (*types.Mood, error)
	List(ctx context.Context, userID uuid.UUID, limit, skip int) ([]*types.Mood, error)
	Latest(ctx context.Context, userID uuid.UUID) (*types.Mood, error)
	// Stats averages moods over the last days days. days is clamped to
	// [1, 365].
	Stats(ctx context.Context, userID uuid.UUID, days int) (*MoodStats, error)
}

type MoodStats struct {
	Days    int     `json:"days"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type moodService struct {
	log      *logger.Logger
	moodRepo repos.MoodRepo
}

func NewMoodService(baseLog *logger.Logger, moodRepo repos.MoodRepo) MoodService {
	return &moodService{
		log:      baseLog.With("service", "MoodService"),
		moodRepo: moodRepo,
	}
}

func (s *moodService) Record(ctx context.Context, userID uuid.UUID, value int, note, source string, date *time.Time) (*types.Mood, error) {
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("mood value %d is outside the 1-5 scale", value)
	}
	if source == "" {
		source = types.MoodSourceTracker
	}
	when := time.Now().UTC()
	if date != nil {
		when = date.UTC()
	}

	mood := &types.Mood{
		UserID: userID,
		Value:  value,
		Note:   note,
		Source: source,
		Date:   when,
	}
	created, err := s.moodRepo.Create(ctx, nil, []*types.Mood{mood})
	if err != nil {
		return nil, fmt.Errorf("record mood: %w", err)
	}
	return created[0], nil
}

func (s *moodService) List(ctx context.Context, userID uuid.UUID, limit, skip int) ([]*types.Mood, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	return s.moodRepo.ListByUser(ctx, nil, userID, limit, skip)
}

func (s *moodService) Latest(ctx context.Context, userID uuid.UUID) (*types.Mood, error) {
	return s.moodRepo.LatestByUser(ctx, nil, userID)
}

func (s *moodService) Stats(ctx context.Context, userID uuid.UUID, days int) (*MoodStats, error) {
	if days < 1 {
		days = 7
	}
	if days > 365 {
		days = 365
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	moods, err := s.moodRepo.ListSince(ctx, nil, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load mood stats: %w", err)
	}
	stats := &MoodStats{Days: days, Count: len(moods)}
	if len(moods) > 0 {
		sum := 0
		for _, m := range moods {
			sum += m.Value
		}
		stats.Average = float64(sum) / float64(len(moods))
	}
	return stats, nil
}
