package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CareerSuggestion is the append-only log of every computed suggestion,
// fallback or model-produced. Input and Result keep the full request and
// response documents for later analysis.
type CareerSuggestion struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Input     datatypes.JSON `gorm:"type:jsonb;column:input" json:"input"`
	Result    datatypes.JSON `gorm:"type:jsonb;column:result" json:"result"`
	Mood      string         `gorm:"column:mood" json:"mood"`
	Insight   string         `gorm:"column:insight" json:"insight"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CareerSuggestion) TableName() string {
	return "career_suggestion"
}
