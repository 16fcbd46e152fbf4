package models

import "time"

type DisasterType string

const (
	DisasterFlood      DisasterType = "Flood"
	DisasterEarthquake DisasterType = "Earthquake"
	DisasterFire       DisasterType = "Fire"
	DisasterHurricane  DisasterType = "Hurricane"
	DisasterTornado    DisasterType = "Tornado"
	DisasterDrought    DisasterType = "Drought"
	DisasterLandslide  DisasterType = "Landslide"
	DisasterTsunami    DisasterType = "Tsunami"
	DisasterOther      DisasterType = "Other"
)

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "Low"
	UrgencyMedium   UrgencyLevel = "Medium"
	UrgencyHigh     UrgencyLevel = "High"
	UrgencyCritical UrgencyLevel = "Critical"
)

// IncidentStatusPending is the status every new report starts in.
const IncidentStatusPending = "Pending"

type IncidentReport struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	Title         string       `gorm:"type:varchar(200);not null" json:"title"`
	Description   string       `gorm:"type:text;not null" json:"description"`
	Location      string       `gorm:"type:varchar(255);not null" json:"location"`
	IncidentDate  time.Time    `gorm:"not null" json:"incident_date"`
	DisasterType  DisasterType `gorm:"type:varchar(50);not null" json:"disaster_type"`
	AffectedAreas string       `gorm:"type:text" json:"affected_areas"`
	UrgencyLevel  UrgencyLevel `gorm:"type:varchar(20);not null" json:"urgency_level"`
	UserID        uint64       `gorm:"not null;index" json:"user_id"`
	ReportedAt    time.Time    `gorm:"not null;index" json:"reported_at"`
	Status        string       `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
