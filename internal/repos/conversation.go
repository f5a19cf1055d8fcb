package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type ConversationRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Conversation, error)
	Save(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) (*types.Conversation, error)
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return &conversationRepo{db: db, log: baseLog.With("repo", "ConversationRepo")}
}

func (cr *conversationRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Conversation
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *conversationRepo) Save(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) (*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Save(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}
