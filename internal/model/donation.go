package model

import (
	"time"

	"github.com/google/uuid"
)

// Donation records a contribution made through the platform.
// Checkout itself happens outside this service, only the outcome is stored.
type Donation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`

	// DonorID is nil for anonymous donations
	DonorID *uuid.UUID `gorm:"type:uuid;index" json:"donor_id,omitempty"`
	Donor   *User      `gorm:"foreignKey:DonorID;references:ID" json:"-"`

	AmountCents int    `gorm:"not null" json:"amount_cents"`
	Currency    string `gorm:"type:text;default:'USD'" json:"currency"`
	Note        string `gorm:"type:text" json:"note"`
}
