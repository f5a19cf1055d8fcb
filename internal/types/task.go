package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Priority    string     `gorm:"column:priority;default:medium" json:"priority"`
	DueDate     *time.Time `gorm:"column:due_date" json:"dueDate,omitempty"`
	Status      string     `gorm:"index;column:status;default:pending" json:"status"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Task) TableName() string {
	return "task"
}
