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

// VolunteerService handles the volunteer registration workflow.
type VolunteerService struct {
	volunteerRepo repository.VolunteerRepository
	now           func() time.Time
}

// NewVolunteerService creates a new VolunteerService
func NewVolunteerService(volunteerRepo repository.VolunteerRepository) *VolunteerService {
	return &VolunteerService{
		volunteerRepo: volunteerRepo,
		now:           time.Now,
	}
}

// RegisterVolunteerInput represents the fields a volunteer submits
type RegisterVolunteerInput struct {
	Skills            string `json:"skills" validate:"required,max=2000"`
	Availability      string `json:"availability" validate:"required,max=255"`
	HasTransportation bool   `json:"has_transportation"`
	PreferredLocation string `json:"preferred_location" validate:"max=255"`
	EmergencyContact  string `json:"emergency_contact" validate:"max=255"`
}

// Register creates the caller's Active registration. A caller who already has
// one gets ErrAlreadyRegistered, including when a concurrent request wins the
// insert.
func (s *VolunteerService) Register(ctx context.Context, identity session.Identity, input RegisterVolunteerInput) (*models.Volunteer, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	trim(&input.Skills, &input.Availability, &input.PreferredLocation, &input.EmergencyContact)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.volunteerRepo.FindByUserID(ctx, identity.UserID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: failed to check volunteer registration: %v", ErrInternal, err)
	}

	volunteer := &models.Volunteer{
		Skills:            input.Skills,
		Availability:      input.Availability,
		HasTransportation: input.HasTransportation,
		PreferredLocation: input.PreferredLocation,
		EmergencyContact:  input.EmergencyContact,
		UserID:            identity.UserID,
		RegisteredAt:      s.now().UTC(),
		Status:            models.VolunteerStatusActive,
	}

	if err := s.volunteerRepo.Create(ctx, volunteer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("%w: failed to create volunteer registration: %v", ErrInternal, err)
	}

	return volunteer, nil
}

// MyRegistration returns the caller's registration, whatever its status
func (s *VolunteerService) MyRegistration(ctx context.Context, identity session.Identity) (*models.Volunteer, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	volunteer, err := s.volunteerRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find volunteer registration: %v", ErrInternal, err)
	}

	return volunteer, nil
}

// ListMine returns the caller's Active registrations, most recent first
func (s *VolunteerService) ListMine(ctx context.Context, identity session.Identity, page utils.PaginationParams) ([]models.Volunteer, int64, error) {
	if err := identity.Require(); err != nil {
		return nil, 0, err
	}

	userID := identity.UserID
	return s.listActive(ctx, &userID, page)
}

// ListActive returns every Active registration, most recent first, with users attached
func (s *VolunteerService) ListActive(ctx context.Context, identity session.Identity, page utils.PaginationParams) ([]models.Volunteer, int64, error) {
	if err := identity.Require(); err != nil {
		return nil, 0, err
	}

	return s.listActive(ctx, nil, page)
}

// Detail returns one registration with its user. Ownership is not checked.
func (s *VolunteerService) Detail(ctx context.Context, identity session.Identity, id uint64) (*models.Volunteer, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	volunteer, err := s.volunteerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find volunteer registration: %v", ErrInternal, err)
	}

	return volunteer, nil
}

func (s *VolunteerService) listActive(ctx context.Context, userID *uint64, page utils.PaginationParams) ([]models.Volunteer, int64, error) {
	status := models.VolunteerStatusActive
	volunteers, total, err := s.volunteerRepo.List(ctx, repository.ListFilter{
		UserID:     userID,
		Status:     &status,
		Pagination: page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to list volunteers: %v", ErrInternal, err)
	}
	return volunteers, total, nil
}
