package models

import "time"

type DonationType string

const (
	DonationFood     DonationType = "Food"
	DonationWater    DonationType = "Water"
	DonationClothing DonationType = "Clothing"
	DonationMedical  DonationType = "Medical"
	DonationShelter  DonationType = "Shelter"
	DonationHygiene  DonationType = "Hygiene"
	DonationOther    DonationType = "Other"
)

// DonationStatusPending is the status every new donation starts in.
const DonationStatusPending = "Pending"

type Donation struct {
	ID                  uint64       `gorm:"primarykey" json:"id"`
	DonationType        DonationType `gorm:"type:varchar(50);not null" json:"donation_type"`
	ItemDescription     string       `gorm:"type:text;not null" json:"item_description"`
	Quantity            int          `gorm:"not null" json:"quantity"`
	Unit                string       `gorm:"type:varchar(50);not null" json:"unit"`
	TargetArea          string       `gorm:"type:varchar(255)" json:"target_area"`
	SpecialInstructions string       `gorm:"type:text" json:"special_instructions"`
	UserID              uint64       `gorm:"not null;index" json:"user_id"`
	DonationDate        time.Time    `gorm:"not null;index" json:"donation_date"`
	Status              string       `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
