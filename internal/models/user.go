package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100)" json:"last_name"`
	PhoneNumber  string    `gorm:"type:varchar(30)" json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	// Relations
	IncidentReports []IncidentReport `gorm:"foreignKey:UserID" json:"-"`
	Donations       []Donation       `gorm:"foreignKey:UserID" json:"-"`
	Volunteer       *Volunteer       `gorm:"foreignKey:UserID" json:"-"`
}
