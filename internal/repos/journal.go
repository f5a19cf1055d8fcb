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

type JournalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.JournalEntry) ([]*types.JournalEntry, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*types.JournalEntry, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, search string, limit, skip int) ([]*types.JournalEntry, error)
	ListBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.JournalEntry, error)
	Update(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (bool, error)
}

type journalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalRepo(db *gorm.DB, baseLog *logger.Logger) JournalRepo {
	return &journalRepo{db: db, log: baseLog.With("repo", "JournalRepo")}
}

func (jr *journalRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.JournalEntry) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if len(entries) == 0 {
		return []*types.JournalEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (jr *journalRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var result types.JournalEntry
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (jr *journalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, search string, limit, skip int) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID)
	if search != "" {
		// ILIKE over title, content and the jsonb tasks column covers the
		// same surface the original searched (title, content, task text).
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ? OR tasks::text ILIKE ?", pattern, pattern, pattern)
	}
	var results []*types.JournalEntry
	if err := query.
		Order("date DESC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jr *journalRepo) ListBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var results []*types.JournalEntry
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jr *journalRepo) Update(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if err := transaction.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (jr *journalRepo) Delete(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&types.JournalEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
