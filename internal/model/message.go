package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is gorm model for a direct message between two users.
// Delivery is fire-and-forget, the row is the whole guarantee.
type Message struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SentAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"sent_at"`

	SenderID uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender   User      `gorm:"foreignKey:SenderID;references:ID" json:"-"`

	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID;references:ID" json:"-"`

	Body string `gorm:"type:text;not null" json:"body"`
}
