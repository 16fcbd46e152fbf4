package repository

import (
	"context"

	"github.com/yukikurage/disaster-relief-api/internal/database"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"gorm.io/gorm"
)

// GormVolunteerRepository is a GORM implementation of VolunteerRepository
type GormVolunteerRepository struct {
	db *gorm.DB
}

// NewVolunteerRepository creates a new VolunteerRepository
func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &GormVolunteerRepository{db: db}
}

// Create creates a new volunteer registration
func (r *GormVolunteerRepository) Create(ctx context.Context, volunteer *models.Volunteer) error {
	return r.db.WithContext(ctx).Create(volunteer).Error
}

// FindByID finds a volunteer registration by ID
func (r *GormVolunteerRepository) FindByID(ctx context.Context, id uint64) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.WithContext(ctx).Preload("User").First(&volunteer, id).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

// FindByUserID finds the registration belonging to a user
func (r *GormVolunteerRepository) FindByUserID(ctx context.Context, userID uint64) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		First(&volunteer).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

// List retrieves volunteer registrations, most recently registered first
func (r *GormVolunteerRepository) List(ctx context.Context, filter ListFilter) ([]models.Volunteer, int64, error) {
	var volunteers []models.Volunteer

	query := applyFilter(r.db.WithContext(ctx).Model(&models.Volunteer{}), "volunteers", filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(database.NewestFirst("volunteers", "registered_at"), database.Paginate(filter.Pagination)).
		Preload("User").
		Find(&volunteers).Error; err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}
