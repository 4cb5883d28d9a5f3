// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// RoleAthlete is role of athlete user looking for opportunities
	RoleAthlete = "athlete"
	// RoleOrganization is role of recruiting organization user
	RoleOrganization = "organization"
	// RoleAdmin is role of administrator user
	RoleAdmin = "admin"
)

// ContactInfo holds optional contact channels shared by every profile kind
type ContactInfo struct {
	Tel   *string `json:"tel"`
	Email *string `json:"email"`
}

// User is gorm model for the base account record shared by every role
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Password string    `json:"-"`
	GoogleID string    `json:"-"`
	Role     string    `gorm:"type:text;not null" json:"role"`
	ContactInfo
	ProfilePicture string    `gorm:"type:text" json:"profile_picture"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// EditableAthleteInfo is part of athlete profile that can be edited
type EditableAthleteInfo struct {
	FirstName      string         `gorm:"type:text" json:"first_name"`
	LastName       string         `gorm:"type:text" json:"last_name"`
	Sport          *string        `gorm:"type:text" json:"sport"`
	Position       *string        `gorm:"type:text" json:"position"`
	GraduationYear *string        `gorm:"type:text" json:"graduation_year"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Highlights     pq.StringArray `gorm:"type:text[]" json:"highlights"`
}

// AthleteUser is gorm model for athlete profile data
type AthleteUser struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user"`
	EditableAthleteInfo
}

// EditableOrganizationInfo is part of organization profile that can be edited
type EditableOrganizationInfo struct {
	Name     string  `gorm:"type:text" json:"name"`
	Overview string  `gorm:"type:text" json:"overview"`
	Website  string  `gorm:"type:text" json:"website"`
	City     *string `gorm:"type:text" json:"city"`
	State    *string `gorm:"type:text" json:"state"`
}

// OrganizationUser is gorm model for recruiting organization profile data
type OrganizationUser struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user"`
	EditableOrganizationInfo
	Opportunities []Opportunity `gorm:"foreignKey:OrganizationID;references:UserID" json:"opportunities,omitempty"`
}

// AthleteResponse is login/register response for athlete users
type AthleteResponse struct {
	User        AthleteUser `json:"user"`
	AccessToken string      `json:"access_token"`
}

// OrganizationResponse is login/register response for organization users
type OrganizationResponse struct {
	User        OrganizationUser `json:"user"`
	AccessToken string           `json:"access_token"`
}
