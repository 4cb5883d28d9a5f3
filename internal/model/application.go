package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is pending review
	ApplicationStatusPending = "pending"
	// ApplicationStatusInConsideration indicates that the application is in consideration and organization will contact later
	ApplicationStatusInConsideration = "in consideration"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// ApplicationStatuses lists every valid application status value
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusInConsideration,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// Application represents an athlete submission against one opportunity
type Application struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
	Status    string    `gorm:"type:text" json:"status"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`

	AthleteID uuid.UUID   `gorm:"type:uuid;not null;index" json:"athlete_id"`
	Athlete   AthleteUser `gorm:"foreignKey:AthleteID;references:UserID" json:"-"`

	OpportunityID uuid.UUID   `gorm:"type:uuid;not null;index" json:"opportunity_id"`
	Opportunity   Opportunity `gorm:"foreignKey:OpportunityID;references:ID" json:"-"`
}
