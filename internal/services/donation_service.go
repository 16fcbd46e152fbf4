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

// DonationService handles the donation workflow.
type DonationService struct {
	donationRepo repository.DonationRepository
	now          func() time.Time
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo repository.DonationRepository) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		now:          time.Now,
	}
}

// CreateDonationInput represents the fields a donor submits
type CreateDonationInput struct {
	DonationType        models.DonationType `json:"donation_type" validate:"required,oneof=Food Water Clothing Medical Shelter Hygiene Other"`
	ItemDescription     string              `json:"item_description" validate:"required,max=2000"`
	Quantity            int                 `json:"quantity" validate:"gt=0"`
	Unit                string              `json:"unit" validate:"required,max=50"`
	TargetArea          string              `json:"target_area" validate:"max=255"`
	SpecialInstructions string              `json:"special_instructions" validate:"max=2000"`
}

// Create records a new Pending donation owned by the caller
func (s *DonationService) Create(ctx context.Context, identity session.Identity, input CreateDonationInput) (*models.Donation, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	trim(&input.ItemDescription, &input.Unit, &input.TargetArea, &input.SpecialInstructions)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	donation := &models.Donation{
		DonationType:        input.DonationType,
		ItemDescription:     input.ItemDescription,
		Quantity:            input.Quantity,
		Unit:                input.Unit,
		TargetArea:          input.TargetArea,
		SpecialInstructions: input.SpecialInstructions,
		UserID:              identity.UserID,
		DonationDate:        s.now().UTC(),
		Status:              models.DonationStatusPending,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("%w: failed to create donation: %v", ErrInternal, err)
	}

	return donation, nil
}

// ListMine returns the caller's donations, most recent first
func (s *DonationService) ListMine(ctx context.Context, identity session.Identity, page utils.PaginationParams) ([]models.Donation, int64, error) {
	if err := identity.Require(); err != nil {
		return nil, 0, err
	}

	userID := identity.UserID
	return s.list(ctx, repository.ListFilter{UserID: &userID, Pagination: page})
}

// ListAll returns every donation, most recent first, with donors attached
func (s *DonationService) ListAll(ctx context.Context, identity session.Identity, page utils.PaginationParams) ([]models.Donation, int64, error) {
	if err := identity.Require(); err != nil {
		return nil, 0, err
	}

	return s.list(ctx, repository.ListFilter{Pagination: page})
}

// Detail returns one donation with its donor. Ownership is not checked.
func (s *DonationService) Detail(ctx context.Context, identity session.Identity, id uint64) (*models.Donation, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find donation: %v", ErrInternal, err)
	}

	return donation, nil
}

func (s *DonationService) list(ctx context.Context, filter repository.ListFilter) ([]models.Donation, int64, error) {
	donations, total, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to list donations: %v", ErrInternal, err)
	}
	return donations, total, nil
}
