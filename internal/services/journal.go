package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

// JournalEntryInput is the mutable surface of an entry. Task counters are
// derived server-side, never taken from the client.
type JournalEntryInput struct {
	Date        *time.Time         `json:"date"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Mood        *int               `json:"mood"`
	MoodLabel   string             `json:"moodLabel"`
	Notes       string             `json:"notes"`
	Tags        []string           `json:"tags"`
	SleepHours  float64            `json:"sleepHours"`
	EnergyLevel int                `json:"energyLevel"`
	Tasks       []types.JournalTask `json:"tasks"`
}

type JournalService interface {
	Create(ctx context.Context, userID uuid.UUID, input JournalEntryInput) (*types.JournalEntry, error)
	Get(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error)
	List(ctx context.Context, userID uuid.UUID, search string, limit, skip int) ([]*types.JournalEntry, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, input JournalEntryInput) (*types.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) (bool, error)
}

type journalService struct {
	log         *logger.Logger
	journalRepo repos.JournalRepo
	moodRepo    repos.MoodRepo
}

func NewJournalService(baseLog *logger.Logger, journalRepo repos.JournalRepo, moodRepo repos.MoodRepo) JournalService {
	return &journalService{
		log:         baseLog.With("service", "JournalService"),
		journalRepo: journalRepo,
		moodRepo:    moodRepo,
	}
}

func (s *journalService) Create(ctx context.Context, userID uuid.UUID, input JournalEntryInput) (*types.JournalEntry, error) {
	if strings.TrimSpace(input.Title) == "" && strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("journal entry needs a title or content")
	}
	if input.Mood != nil && (*input.Mood < 1 || *input.Mood > 5) {
		return nil, fmt.Errorf("mood value %d is outside the 1-5 scale", *input.Mood)
	}

	entry := &types.JournalEntry{UserID: userID}
	if err := applyJournalInput(entry, input); err != nil {
		return nil, err
	}

	created, err := s.journalRepo.Create(ctx, nil, []*types.JournalEntry{entry})
	if err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	s.recordEntryMood(ctx, userID, created[0])
	return created[0], nil
}

func (s *journalService) Get(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	return s.journalRepo.GetByID(ctx, nil, userID, entryID)
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, search string, limit, skip int) ([]*types.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}
	return s.journalRepo.ListByUser(ctx, nil, userID, search, limit, skip)
}

func (s *journalService) Update(ctx context.Context, userID, entryID uuid.UUID, input JournalEntryInput) (*types.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(ctx, nil, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("load journal entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	if input.Mood != nil && (*input.Mood < 1 || *input.Mood > 5) {
		return nil, fmt.Errorf("mood value %d is outside the 1-5 scale", *input.Mood)
	}
	if err := applyJournalInput(entry, input); err != nil {
		return nil, err
	}
	updated, err := s.journalRepo.Update(ctx, nil, entry)
	if err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return updated, nil
}

func (s *journalService) Delete(ctx context.Context, userID, entryID uuid.UUID) (bool, error) {
	return s.journalRepo.Delete(ctx, nil, userID, entryID)
}

func applyJournalInput(entry *types.JournalEntry, input JournalEntryInput) error {
	when := time.Now().UTC()
	if input.Date != nil {
		when = input.Date.UTC()
	}
	entry.Date = when
	entry.Title = strings.TrimSpace(input.Title)
	entry.Content = input.Content
	entry.MoodValue = input.Mood
	entry.MoodLabel = input.MoodLabel
	entry.Notes = input.Notes
	entry.SleepHours = input.SleepHours
	entry.EnergyLevel = input.EnergyLevel

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("serialize tags: %w", err)
	}
	entry.Tags = datatypes.JSON(tagsJSON)

	tasks := input.Tasks
	if tasks == nil {
		tasks = []types.JournalTask{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("serialize tasks: %w", err)
	}
	entry.Tasks = datatypes.JSON(tasksJSON)

	entry.TaskTotal = len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	entry.TaskCompleted = completed
	return nil
}

// recordEntryMood mirrors a rated journal entry into mood history so trends
// pick it up. Best-effort.
func (s *journalService) recordEntryMood(ctx context.Context, userID uuid.UUID, entry *types.JournalEntry) {
	if entry.MoodValue == nil {
		return
	}
	mood := &types.Mood{
		UserID: userID,
		Value:  *entry.MoodValue,
		Note:   entry.Title,
		Source: types.MoodSourceJournal,
		Date:   entry.Date,
	}
	if _, err := s.moodRepo.Create(ctx, nil, []*types.Mood{mood}); err != nil {
		s.log.Warn("Failed to mirror journal mood", "error", err)
	}
}
