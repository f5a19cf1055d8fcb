package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
	Mood string    `json:"mood,omitempty"`
}

// Conversation holds one message thread per user, messages appended in order
// as a jsonb array.
type Conversation struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	Messages  datatypes.JSON `gorm:"type:jsonb;column:messages" json:"messages"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Conversation) TableName() string {
	return "conversation"
}
