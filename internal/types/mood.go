package types

import (
	"time"

	"github.com/google/uuid"
)

// Mood sources mirror the surfaces that can record a mood entry.
const (
	MoodSourceTracker = "tracker"
	MoodSourceChat    = "chat"
	MoodSourceJournal = "journal"
	MoodSourceTask    = "task"
)

type Mood struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Value     int       `gorm:"not null;column:value" json:"value"`
	Note      string    `gorm:"column:note" json:"note"`
	Source    string    `gorm:"column:source;default:tracker" json:"source"`
	Date      time.Time `gorm:"index;not null;default:now();column:date" json:"date"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Mood) TableName() string {
	return "mood"
}
