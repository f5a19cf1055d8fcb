package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/types"
)

// TaskFilter narrows List results; zero values mean "no filter".
type TaskFilter struct {
	Status   string
	Priority string
	DueDate  *time.Time
}

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Task, error)
	List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter TaskFilter) ([]*types.Task, error)
	ListForWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.Task, error)
	Update(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (bool, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (tr *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Task
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *taskRepo) List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter TaskFilter) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DueDate != nil {
		dayStart := time.Date(filter.DueDate.Year(), filter.DueDate.Month(), filter.DueDate.Day(), 0, 0, 0, 0, filter.DueDate.Location())
		query = query.Where("due_date >= ? AND due_date < ?", dayStart, dayStart.Add(24*time.Hour))
	}
	var results []*types.Task
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListForWindow returns tasks either created or completed inside the window,
// so completions of older tasks still count toward the completion rate.
func (tr *taskRepo) ListForWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("(created_at >= ? AND created_at <= ?) OR (completed_at >= ? AND completed_at <= ?)", start, end, start, end).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) Update(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (tr *taskRepo) Delete(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&types.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
