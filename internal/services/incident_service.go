package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/repository"
	"github.com/yukikurage/disaster-relief-api/internal/session"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
	"gorm.io/gorm"
)

// incidentDateLayouts are tried in order when parsing IncidentDate.
var incidentDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// IncidentService handles the incident report workflow.
type IncidentService struct {
	incidentRepo repository.IncidentRepository
	now          func() time.Time
}

// NewIncidentService creates a new IncidentService
func NewIncidentService(incidentRepo repository.IncidentRepository) *IncidentService {
	return &IncidentService{
		incidentRepo: incidentRepo,
		now:          time.Now,
	}
}

// CreateIncidentInput represents the fields a reporter submits
type CreateIncidentInput struct {
	Title         string              `json:"title" validate:"required,max=200"`
	Description   string              `json:"description" validate:"required,max=5000"`
	Location      string              `json:"location" validate:"required,max=255"`
	IncidentDate  string              `json:"incident_date" validate:"required"` // YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339
	DisasterType  models.DisasterType `json:"disaster_type" validate:"required,oneof=Flood Earthquake Fire Hurricane Tornado Drought Landslide Tsunami Other"`
	AffectedAreas string              `json:"affected_areas" validate:"max=2000"`
	UrgencyLevel  models.UrgencyLevel `json:"urgency_level" validate:"required,oneof=Low Medium High Critical"`
}

// Create records a new Pending report owned by the caller
func (s *IncidentService) Create(ctx context.Context, identity session.Identity, input CreateIncidentInput) (*models.IncidentReport, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	trim(&input.Title, &input.Description, &input.Location, &input.IncidentDate, &input.AffectedAreas)

	fields := map[string]string{}
	if err := validateInput(input); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		fields = verr.Fields
	}

	var incidentDate time.Time
	if input.IncidentDate != "" {
		parsed, ok := parseIncidentDate(input.IncidentDate)
		if ok {
			incidentDate = parsed
		} else {
			fields["incident_date"] = "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	incident := &models.IncidentReport{
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		IncidentDate:  incidentDate,
		DisasterType:  input.DisasterType,
		AffectedAreas: input.AffectedAreas,
		UrgencyLevel:  input.UrgencyLevel,
		UserID:        identity.UserID,
		ReportedAt:    s.now().UTC(),
		Status:        models.IncidentStatusPending,
	}

	if err := s.incidentRepo.Create(ctx, incident); err != nil {
		return nil, fmt.Errorf("%w: failed to create incident report: %v", ErrInternal, err)
	}

	return incident, nil
}

// ListAll returns every report, most recent first, with reporters attached
func (s *IncidentService) ListAll(ctx context.Context, identity session.Identity, page utils.PaginationParams) ([]models.IncidentReport, int64, error) {
	if err := identity.Require(); err != nil {
		return nil, 0, err
	}

	incidents, total, err := s.incidentRepo.List(ctx, repository.ListFilter{Pagination: page})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to list incident reports: %v", ErrInternal, err)
	}

	return incidents, total, nil
}

// Detail returns one report with its reporter. Any signed-in user may view any report.
func (s *IncidentService) Detail(ctx context.Context, identity session.Identity, id uint64) (*models.IncidentReport, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	incident, err := s.incidentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find incident report: %v", ErrInternal, err)
	}

	return incident, nil
}

func parseIncidentDate(raw string) (time.Time, bool) {
	for _, layout := range incidentDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
