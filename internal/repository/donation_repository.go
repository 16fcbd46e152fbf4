package repository

import (
	"context"

	"github.com/yukikurage/disaster-relief-api/internal/database"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"gorm.io/gorm"
)

// GormDonationRepository is a GORM implementation of DonationRepository
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &GormDonationRepository{db: db}
}

// Create creates a new donation
func (r *GormDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// FindByID finds a donation by ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uint64) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.WithContext(ctx).Preload("User").First(&donation, id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// List retrieves donations, most recent donation date first
func (r *GormDonationRepository) List(ctx context.Context, filter ListFilter) ([]models.Donation, int64, error) {
	var donations []models.Donation

	query := applyFilter(r.db.WithContext(ctx).Model(&models.Donation{}), "donations", filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(database.NewestFirst("donations", "donation_date"), database.Paginate(filter.Pagination)).
		Preload("User").
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
