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

type MoodRepo interface {
	Create(ctx context.Context, tx *gorm.DB, moods []*types.Mood) ([]*types.Mood, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, skip int) ([]*types.Mood, error)
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.Mood, error)
	LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Mood, error)
	ActiveUserIDs(ctx context.Context, tx *gorm.DB, since time.Time) ([]uuid.UUID, error)
}

type moodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodRepo(db *gorm.DB, baseLog *logger.Logger) MoodRepo {
	return &moodRepo{db: db, log: baseLog.With("repo", "MoodRepo")}
}

func (mr *moodRepo) Create(ctx context.Context, tx *gorm.DB, moods []*types.Mood) ([]*types.Mood, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(moods) == 0 {
		return []*types.Mood{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

func (mr *moodRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, skip int) ([]*types.Mood, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Mood
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *moodRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.Mood, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Mood
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *moodRepo) LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Mood, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var result types.Mood
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *moodRepo) ActiveUserIDs(ctx context.Context, tx *gorm.DB, since time.Time) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Mood{}).
		Where("date >= ?", since).
		Distinct("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
