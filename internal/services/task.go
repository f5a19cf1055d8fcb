package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// TaskUpdate carries only the fields present in the request; nil means
// "leave unchanged".
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status"`
}

type TaskService interface {
	Create(ctx context.Context, userID uuid.UUID, input TaskInput) (*types.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (*types.Task, error)
	List(ctx context.Context, userID uuid.UUID, filter repos.TaskFilter) ([]*types.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, update TaskUpdate) (*types.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) (bool, error)
}

type taskService struct {
	log      *logger.Logger
	taskRepo repos.TaskRepo
	moodRepo repos.MoodRepo
}

func NewTaskService(baseLog *logger.Logger, taskRepo repos.TaskRepo, moodRepo repos.MoodRepo) TaskService {
	return &taskService{
		log:      baseLog.With("service", "TaskService"),
		taskRepo: taskRepo,
		moodRepo: moodRepo,
	}
}

func (s *taskService) Create(ctx context.Context, userID uuid.UUID, input TaskInput) (*types.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}
	task := &types.Task{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		Status:      types.TaskStatusPending,
	}
	created, err := s.taskRepo.Create(ctx, nil, []*types.Task{task})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created[0], nil
}

func (s *taskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*types.Task, error) {
	return s.taskRepo.GetByID(ctx, nil, userID, taskID)
}

func (s *taskService) List(ctx context.Context, userID uuid.UUID, filter repos.TaskFilter) ([]*types.Task, error) {
	return s.taskRepo.List(ctx, nil, userID, filter)
}

func (s *taskService) Update(ctx context.Context, userID, taskID uuid.UUID, update TaskUpdate) (*types.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, nil, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		return nil, nil
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("task title cannot be empty")
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}

	statusChanged := ""
	if update.Status != nil && *update.Status != task.Status {
		switch *update.Status {
		case types.TaskStatusCompleted:
			now := time.Now().UTC()
			task.Status = types.TaskStatusCompleted
			task.CompletedAt = &now
			statusChanged = types.TaskStatusCompleted
		case types.TaskStatusPending:
			task.Status = types.TaskStatusPending
			task.CompletedAt = nil
			statusChanged = types.TaskStatusPending
		default:
			return nil, fmt.Errorf("unknown task status %q", *update.Status)
		}
	}

	updated, err := s.taskRepo.Update(ctx, nil, task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if statusChanged != "" {
		s.recordStatusMood(ctx, userID, updated, statusChanged)
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uuid.UUID) (bool, error) {
	return s.taskRepo.Delete(ctx, nil, userID, taskID)
}

// recordStatusMood nudges mood history when a task flips status: completing
// lifts the latest value by one (capped at 5), reopening drops it by one
// (floored at 1). Best-effort.
func (s *taskService) recordStatusMood(ctx context.Context, userID uuid.UUID, task *types.Task, status string) {
	latest, err := s.moodRepo.LatestByUser(ctx, nil, userID)
	if err != nil {
		s.log.Warn("Failed to load latest mood for task nudge", "error", err)
		return
	}
	value := 3
	if latest != nil {
		value = latest.Value
	}
	note := ""
	switch status {
	case types.TaskStatusCompleted:
		value++
		if value > 5 {
			value = 5
		}
		note = "Completed: " + task.Title
	case types.TaskStatusPending:
		value--
		if value < 1 {
			value = 1
		}
		note = "Reopened: " + task.Title
	}
	mood := &types.Mood{
		UserID: userID,
		Value:  value,
		Note:   note,
		Source: types.MoodSourceTask,
		Date:   time.Now().UTC(),
	}
	if _, err := s.moodRepo.Create(ctx, nil, []*types.Mood{mood}); err != nil {
		s.log.Warn("Failed to record task mood nudge", "error", err)
	}
}
