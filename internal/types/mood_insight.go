package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MoodInsight struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Date           time.Time      `gorm:"not null;column:date" json:"date"`
	InferredMood   string         `gorm:"column:inferred_mood" json:"inferredMood"`
	Score          float64        `gorm:"column:score" json:"score"`
	CompletionRate float64        `gorm:"column:completion_rate" json:"completionRate"`
	AverageSleep   float64        `gorm:"column:average_sleep" json:"averageSleep"`
	MoodTriggers   datatypes.JSON `gorm:"type:jsonb;column:mood_triggers" json:"moodTriggers"`
	Message        string         `gorm:"column:message" json:"message"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (MoodInsight) TableName() string {
	return "mood_insight"
}
