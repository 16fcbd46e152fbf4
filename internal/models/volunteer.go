package models

import "time"

// VolunteerStatusActive is the status every new registration starts in.
const VolunteerStatusActive = "Active"

type Volunteer struct {
	ID                uint64    `gorm:"primarykey" json:"id"`
	Skills            string    `gorm:"type:text;not null" json:"skills"`
	Availability      string    `gorm:"type:varchar(255);not null" json:"availability"`
	HasTransportation bool      `gorm:"not null;default:false" json:"has_transportation"`
	PreferredLocation string    `gorm:"type:varchar(255)" json:"preferred_location"`
	EmergencyContact  string    `gorm:"type:varchar(255)" json:"emergency_contact"`
	UserID            uint64    `gorm:"not null;uniqueIndex" json:"user_id"` // one registration per user
	RegisteredAt      time.Time `gorm:"not null;index" json:"registered_at"`
	Status            string    `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
