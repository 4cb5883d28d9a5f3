package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// StatusPendingApproval is the status every newly posted opportunity starts in
	StatusPendingApproval = "PENDING_APPROVAL"
	// StatusActive is the status of an approved, publicly visible opportunity
	StatusActive = "ACTIVE"
	// StatusRejected is the status of an opportunity an admin turned down
	StatusRejected = "REJECTED"
	// StatusClosed is the status of a soft-deleted or filled opportunity
	StatusClosed = "CLOSED"
	// StatusDraft is the status of an opportunity saved but not submitted
	StatusDraft = "DRAFT"
	// StatusExpired is the status of an opportunity past its deadline
	StatusExpired = "EXPIRED"
)

// OpportunityStatuses lists every valid opportunity status value
var OpportunityStatuses = []string{
	StatusPendingApproval,
	StatusActive,
	StatusRejected,
	StatusClosed,
	StatusDraft,
	StatusExpired,
}

// ValidOpportunityStatus reports whether s is one of the enumerated status values
func ValidOpportunityStatus(s string) bool {
	for _, v := range OpportunityStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// EditableOpportunityInfo is part of opportunity that the owning organization can edit
type EditableOpportunityInfo struct {
	Title        string         `gorm:"type:text" json:"title"`
	Sport        string         `gorm:"type:text" json:"sport"`
	Type         string         `gorm:"type:text" json:"type"`
	Description  string         `gorm:"type:text" json:"description"`
	Location     string         `gorm:"type:text" json:"location"`
	City         *string        `gorm:"type:text" json:"city,omitempty"`
	State        *string        `gorm:"type:text" json:"state,omitempty"`
	Requirements pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Benefits     pq.StringArray `gorm:"type:text[]" json:"benefits"`
	SalaryMin    *int           `json:"salary_min,omitempty"`
	SalaryMax    *int           `json:"salary_max,omitempty"`
	Deadline     *time.Time     `gorm:"type:timestamp" json:"deadline,omitempty"`
}

// Opportunity is gorm model for store posted position data in DB
type Opportunity struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;index;<-:create" json:"organization_id"`
	Organization   OrganizationUser `gorm:"foreignKey:OrganizationID;references:UserID" json:"organization"`
	EditableOpportunityInfo
	Status    string    `gorm:"type:text;not null;default:'PENDING_APPROVAL';index" json:"status"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`

	Applications []Application      `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
	SavedBy      []SavedOpportunity `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE" json:"-"`

	// ApplicationCount is populated by listing queries that select a
	// correlated count, it is not a table column.
	ApplicationCount int64 `gorm:"-:migration;->" json:"application_count"`
}

// SavedOpportunity is gorm model for athlete bookmark records.
// Rows are removed by the store when the opportunity is hard-deleted.
type SavedOpportunity struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OpportunityID uuid.UUID   `gorm:"type:uuid;not null;index:idx_saved_once,unique" json:"opportunity_id"`
	Opportunity   Opportunity `gorm:"foreignKey:OpportunityID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	AthleteID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_saved_once,unique" json:"athlete_id"`
	Athlete       AthleteUser `gorm:"foreignKey:AthleteID;references:UserID" json:"-"`
	SavedAt       time.Time   `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"saved_at"`
}
