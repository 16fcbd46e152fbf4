package repository

import (
	"context"

	"github.com/yukikurage/disaster-relief-api/internal/database"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"gorm.io/gorm"
)

// GormIncidentRepository is a GORM implementation of IncidentRepository
type GormIncidentRepository struct {
	db *gorm.DB
}

// NewIncidentRepository creates a new IncidentRepository
func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &GormIncidentRepository{db: db}
}

// Create creates a new incident report
func (r *GormIncidentRepository) Create(ctx context.Context, incident *models.IncidentReport) error {
	return r.db.WithContext(ctx).Create(incident).Error
}

// FindByID finds an incident report by ID
func (r *GormIncidentRepository) FindByID(ctx context.Context, id uint64) (*models.IncidentReport, error) {
	var incident models.IncidentReport
	if err := r.db.WithContext(ctx).Preload("User").First(&incident, id).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

// List retrieves incident reports, most recently reported first
func (r *GormIncidentRepository) List(ctx context.Context, filter ListFilter) ([]models.IncidentReport, int64, error) {
	var incidents []models.IncidentReport

	query := applyFilter(r.db.WithContext(ctx).Model(&models.IncidentReport{}), "incident_reports", filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(database.NewestFirst("incident_reports", "reported_at"), database.Paginate(filter.Pagination)).
		Preload("User").
		Find(&incidents).Error; err != nil {
		return nil, 0, err
	}

	return incidents, total, nil
}

// applyFilter narrows a query to the owner and status in the filter. Callers
// wrap the result in a Session so the count and the page query can share it.
func applyFilter(query *gorm.DB, table string, filter ListFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where(table+".user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where(table+".status = ?", *filter.Status)
	}
	return query
}
