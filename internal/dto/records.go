package dto

import (
	"time"

	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

// IncidentDTO represents an incident report in API responses
type IncidentDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Location      string              `json:"location"`
	IncidentDate  time.Time           `json:"incident_date"`
	DisasterType  models.DisasterType `json:"disaster_type"`
	AffectedAreas string              `json:"affected_areas"`
	UrgencyLevel  models.UrgencyLevel `json:"urgency_level"`
	UserID        uint64              `json:"user_id"`
	ReportedAt    time.Time           `json:"reported_at"`
	Status        string              `json:"status"`
	User          *UserDTO            `json:"user,omitempty"`
}

// DonationDTO represents a donation in API responses
type DonationDTO struct {
	ID                  uint64              `json:"id"`
	DonationType        models.DonationType `json:"donation_type"`
	ItemDescription     string              `json:"item_description"`
	Quantity            int                 `json:"quantity"`
	Unit                string              `json:"unit"`
	TargetArea          string              `json:"target_area"`
	SpecialInstructions string              `json:"special_instructions"`
	UserID              uint64              `json:"user_id"`
	DonationDate        time.Time           `json:"donation_date"`
	Status              string              `json:"status"`
	User                *UserDTO            `json:"user,omitempty"`
}

// VolunteerDTO represents a volunteer registration in API responses
type VolunteerDTO struct {
	ID                uint64    `json:"id"`
	Skills            string    `json:"skills"`
	Availability      string    `json:"availability"`
	HasTransportation bool      `json:"has_transportation"`
	PreferredLocation string    `json:"preferred_location"`
	EmergencyContact  string    `json:"emergency_contact"`
	UserID            uint64    `json:"user_id"`
	RegisteredAt      time.Time `json:"registered_at"`
	Status            string    `json:"status"`
	User              *UserDTO  `json:"user,omitempty"`
}

// ListResponse is the envelope for every paginated list. Messages carries the
// flash messages left by the previous request.
type ListResponse[T any] struct {
	Items      []T                      `json:"items"`
	Pagination utils.PaginationResponse `json:"pagination"`
	Messages   []FlashMessage           `json:"messages,omitempty"`
}

// FlashMessage is a one-shot notice shown on the next page the user visits
type FlashMessage struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// ToIncidentDTO converts an IncidentReport model to IncidentDTO
func ToIncidentDTO(incident models.IncidentReport) IncidentDTO {
	return IncidentDTO{
		ID:            incident.ID,
		Title:         incident.Title,
		Description:   incident.Description,
		Location:      incident.Location,
		IncidentDate:  incident.IncidentDate,
		DisasterType:  incident.DisasterType,
		AffectedAreas: incident.AffectedAreas,
		UrgencyLevel:  incident.UrgencyLevel,
		UserID:        incident.UserID,
		ReportedAt:    incident.ReportedAt,
		Status:        incident.Status,
		User:          ownerDTO(incident.User),
	}
}

// ToDonationDTO converts a Donation model to DonationDTO
func ToDonationDTO(donation models.Donation) DonationDTO {
	return DonationDTO{
		ID:                  donation.ID,
		DonationType:        donation.DonationType,
		ItemDescription:     donation.ItemDescription,
		Quantity:            donation.Quantity,
		Unit:                donation.Unit,
		TargetArea:          donation.TargetArea,
		SpecialInstructions: donation.SpecialInstructions,
		UserID:              donation.UserID,
		DonationDate:        donation.DonationDate,
		Status:              donation.Status,
		User:                ownerDTO(donation.User),
	}
}

// ToVolunteerDTO converts a Volunteer model to VolunteerDTO
func ToVolunteerDTO(volunteer models.Volunteer) VolunteerDTO {
	return VolunteerDTO{
		ID:                volunteer.ID,
		Skills:            volunteer.Skills,
		Availability:      volunteer.Availability,
		HasTransportation: volunteer.HasTransportation,
		PreferredLocation: volunteer.PreferredLocation,
		EmergencyContact:  volunteer.EmergencyContact,
		UserID:            volunteer.UserID,
		RegisteredAt:      volunteer.RegisteredAt,
		Status:            volunteer.Status,
		User:              ownerDTO(volunteer.User),
	}
}

// ToListResponse converts a page of models with the given converter
func ToListResponse[M, T any](records []M, convert func(M) T, page utils.PaginationParams, total int64, messages []FlashMessage) ListResponse[T] {
	items := make([]T, len(records))
	for i, record := range records {
		items[i] = convert(record)
	}

	return ListResponse[T]{
		Items:      items,
		Pagination: page.Response(total),
		Messages:   messages,
	}
}
