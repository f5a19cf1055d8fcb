package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type MoodInsightRepo interface {
	Create(ctx context.Context, tx *gorm.DB, insights []*types.MoodInsight) ([]*types.MoodInsight, error)
}

type moodInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodInsightRepo(db *gorm.DB, baseLog *logger.Logger) MoodInsightRepo {
	return &moodInsightRepo{db: db, log: baseLog.With("repo", "MoodInsightRepo")}
}

func (mr *moodInsightRepo) Create(ctx context.Context, tx *gorm.DB, insights []*types.MoodInsight) ([]*types.MoodInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(insights) == 0 {
		return []*types.MoodInsight{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}
