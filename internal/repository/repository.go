package repository

import (
	"context"

	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

// ListFilter holds the scoping and pagination options shared by the record lists.
// A nil field means "no restriction".
type ListFilter struct {
	UserID     *uint64
	Status     *string
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user; unique violations surface as gorm.ErrDuplicatedKey
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// IncidentRepository defines the interface for incident report data access
type IncidentRepository interface {
	// Create inserts a new incident report
	Create(ctx context.Context, incident *models.IncidentReport) error

	// FindByID finds a report by ID with its reporting user attached
	FindByID(ctx context.Context, id uint64) (*models.IncidentReport, error)

	// List returns reports newest first with their users attached
	List(ctx context.Context, filter ListFilter) ([]models.IncidentReport, int64, error)
}

// DonationRepository defines the interface for donation data access
type DonationRepository interface {
	// Create inserts a new donation
	Create(ctx context.Context, donation *models.Donation) error

	// FindByID finds a donation by ID with its donor attached
	FindByID(ctx context.Context, id uint64) (*models.Donation, error)

	// List returns donations newest first with their donors attached
	List(ctx context.Context, filter ListFilter) ([]models.Donation, int64, error)
}

// VolunteerRepository defines the interface for volunteer data access
type VolunteerRepository interface {
	// Create inserts a new registration; a second one for the same user
	// surfaces as gorm.ErrDuplicatedKey
	Create(ctx context.Context, volunteer *models.Volunteer) error

	// FindByID finds a registration by ID with its user attached
	FindByID(ctx context.Context, id uint64) (*models.Volunteer, error)

	// FindByUserID finds the registration owned by a user
	FindByUserID(ctx context.Context, userID uint64) (*models.Volunteer, error)

	// List returns registrations newest first with their users attached
	List(ctx context.Context, filter ListFilter) ([]models.Volunteer, int64, error)
}
