package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type CareerSuggestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, suggestions []*types.CareerSuggestion) ([]*types.CareerSuggestion, error)
}

type careerSuggestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareerSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) CareerSuggestionRepo {
	return &careerSuggestionRepo{db: db, log: baseLog.With("repo", "CareerSuggestionRepo")}
}

func (cr *careerSuggestionRepo) Create(ctx context.Context, tx *gorm.DB, suggestions []*types.CareerSuggestion) ([]*types.CareerSuggestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(suggestions) == 0 {
		return []*types.CareerSuggestion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}
