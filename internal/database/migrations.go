package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes backing the list queries
func AddIndexes(db *gorm.DB, log *logrus.Logger) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Per-user donation history, newest first
		{&models.Donation{}, "donations", "idx_donations_user_id_donation_date", "user_id, donation_date"},

		// Active volunteer listings
		{&models.Volunteer{}, "volunteers", "idx_volunteers_status_registered_at", "status, registered_at"},

		// Incident feed, newest first with id as tie-breaker
		{&models.IncidentReport{}, "incident_reports", "idx_incident_reports_reported_at_id", "reported_at, id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{"index": idx.name, "table": idx.table}).Info("Created index")
	}

	return nil
}
