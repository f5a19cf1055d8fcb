package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JournalTask is an inline task attached to a journal entry. Stored as part
// of the entry's jsonb tasks column, not as a Task row.
type JournalTask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
}

type JournalEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Date          time.Time      `gorm:"index;not null;default:now();column:date" json:"date"`
	Title         string         `gorm:"column:title" json:"title"`
	Content       string         `gorm:"column:content" json:"content"`
	MoodValue     *int           `gorm:"column:mood_value" json:"mood,omitempty"`
	MoodLabel     string         `gorm:"column:mood_label" json:"moodLabel,omitempty"`
	Notes         string         `gorm:"column:notes" json:"notes,omitempty"`
	Tags          datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags,omitempty"`
	SleepHours    float64        `gorm:"column:sleep_hours" json:"sleepHours"`
	EnergyLevel   int            `gorm:"column:energy_level" json:"energyLevel"`
	Tasks         datatypes.JSON `gorm:"type:jsonb;column:tasks" json:"tasks"`
	TaskTotal     int            `gorm:"column:task_total" json:"taskTotal"`
	TaskCompleted int            `gorm:"column:task_completed" json:"taskCompleted"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (JournalEntry) TableName() string {
	return "journal_entry"
}
