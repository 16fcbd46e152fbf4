package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/repository"
	"github.com/yukikurage/disaster-relief-api/internal/session"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
	"gorm.io/gorm"
)

type IncidentServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   *IncidentService
	alice *models.User
	bob   *models.User
	clock time.Time
}

func (s *IncidentServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.svc = NewIncidentService(repository.NewIncidentRepository(s.db))
	s.clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.svc.now = func() time.Time {
		s.clock = s.clock.Add(time.Minute)
		return s.clock
	}
	s.alice = createTestUser(s.T(), s.db, "alice")
	s.bob = createTestUser(s.T(), s.db, "bob")
}

func validIncidentInput(title string) CreateIncidentInput {
	return CreateIncidentInput{
		Title:        title,
		Description:  "River burst its banks",
		Location:     "Durban",
		IncidentDate: "2024-04-30",
		DisasterType: models.DisasterFlood,
		UrgencyLevel: models.UrgencyHigh,
	}
}

func (s *IncidentServiceTestSuite) TestCreate_SetsOwnerStatusAndTimestamp() {
	incident, err := s.svc.Create(context.Background(), identityOf(s.alice), validIncidentInput("Flood"))
	s.Require().NoError(err)

	s.NotZero(incident.ID)
	s.Equal(s.alice.ID, incident.UserID)
	s.Equal(models.IncidentStatusPending, incident.Status)
	s.Equal(s.clock, incident.ReportedAt)

	var stored models.IncidentReport
	s.Require().NoError(s.db.First(&stored, incident.ID).Error)
	s.Equal(s.alice.ID, stored.UserID)
	s.Equal("Pending", stored.Status)
}

func (s *IncidentServiceTestSuite) TestCreate_Unauthenticated() {
	_, err := s.svc.Create(context.Background(), session.Anonymous, validIncidentInput("Flood"))
	s.ErrorIs(err, session.ErrUnauthenticated)

	var count int64
	s.db.Model(&models.IncidentReport{}).Count(&count)
	s.Zero(count)
}

func (s *IncidentServiceTestSuite) TestCreate_Validation() {
	input := validIncidentInput("   ")
	input.DisasterType = "Meteor"
	input.UrgencyLevel = ""
	input.IncidentDate = "  "

	_, err := s.svc.Create(context.Background(), identityOf(s.alice), input)

	var verr *ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Equal("is required", verr.Fields["title"])
	s.Contains(verr.Fields["disaster_type"], "must be one of")
	s.Equal("is required", verr.Fields["urgency_level"])
	s.Equal("is required", verr.Fields["incident_date"])
}

func (s *IncidentServiceTestSuite) TestCreate_BadDateReportedWithOtherFields() {
	input := validIncidentInput("")
	input.IncidentDate = "yesterday"

	_, err := s.svc.Create(context.Background(), identityOf(s.alice), input)

	var verr *ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Len(verr.Fields, 2)
	s.Equal("is required", verr.Fields["title"])
	s.Contains(verr.Fields["incident_date"], "must be a date")

	var count int64
	s.db.Model(&models.IncidentReport{}).Count(&count)
	s.Zero(count)
}

func (s *IncidentServiceTestSuite) TestCreate_IncidentDateStoredInUTC() {
	input := validIncidentInput("Flood")
	input.IncidentDate = "2024-04-30T14:05:00+02:00"

	incident, err := s.svc.Create(context.Background(), identityOf(s.alice), input)
	s.Require().NoError(err)
	s.Equal(time.Date(2024, 4, 30, 12, 5, 0, 0, time.UTC), incident.IncidentDate)
}

func (s *IncidentServiceTestSuite) TestListAll_NewestFirstAcrossOwners() {
	ctx := context.Background()
	_, err := s.svc.Create(ctx, identityOf(s.alice), validIncidentInput("first"))
	s.Require().NoError(err)
	_, err = s.svc.Create(ctx, identityOf(s.bob), validIncidentInput("second"))
	s.Require().NoError(err)
	_, err = s.svc.Create(ctx, identityOf(s.alice), validIncidentInput("third"))
	s.Require().NoError(err)

	incidents, total, err := s.svc.ListAll(ctx, identityOf(s.bob), utils.NewPaginationParams(1, 20))
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(incidents, 3)
	s.Equal([]string{"third", "second", "first"}, []string{incidents[0].Title, incidents[1].Title, incidents[2].Title})
	s.Equal("alice", incidents[0].User.Username)
	s.Equal("bob", incidents[1].User.Username)

	for i := 1; i < len(incidents); i++ {
		s.False(incidents[i].ReportedAt.After(incidents[i-1].ReportedAt))
	}
}

func (s *IncidentServiceTestSuite) TestListAll_TiesOrderedByID() {
	fixed := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	s.svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	a, err := s.svc.Create(ctx, identityOf(s.alice), validIncidentInput("a"))
	s.Require().NoError(err)
	b, err := s.svc.Create(ctx, identityOf(s.alice), validIncidentInput("b"))
	s.Require().NoError(err)

	incidents, _, err := s.svc.ListAll(ctx, identityOf(s.alice), utils.NewPaginationParams(1, 20))
	s.Require().NoError(err)
	s.Require().Len(incidents, 2)
	s.Equal(b.ID, incidents[0].ID)
	s.Equal(a.ID, incidents[1].ID)
}

func (s *IncidentServiceTestSuite) TestDetail() {
	ctx := context.Background()
	created, err := s.svc.Create(ctx, identityOf(s.alice), validIncidentInput("Flood"))
	s.Require().NoError(err)

	// Any signed-in user can read any report.
	got, err := s.svc.Detail(ctx, identityOf(s.bob), created.ID)
	s.Require().NoError(err)
	s.Equal("Flood", got.Title)
	s.Equal("alice", got.User.Username)

	_, err = s.svc.Detail(ctx, identityOf(s.bob), created.ID+100)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.svc.Detail(ctx, session.Anonymous, created.ID)
	s.ErrorIs(err, session.ErrUnauthenticated)
}

func TestIncidentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IncidentServiceTestSuite))
}

// failingIncidentRepo simulates an unavailable store.
type failingIncidentRepo struct{}

func (failingIncidentRepo) Create(context.Context, *models.IncidentReport) error {
	return errors.New("connection refused")
}

func (failingIncidentRepo) FindByID(context.Context, uint64) (*models.IncidentReport, error) {
	return nil, errors.New("connection refused")
}

func (failingIncidentRepo) List(context.Context, repository.ListFilter) ([]models.IncidentReport, int64, error) {
	return nil, 0, errors.New("connection refused")
}

func TestIncidentService_StoreFailureIsInternal(t *testing.T) {
	svc := NewIncidentService(failingIncidentRepo{})
	identity := session.Identity{UserID: 1, Username: "alice"}
	ctx := context.Background()

	_, err := svc.Create(ctx, identity, validIncidentInput("Flood"))
	require.ErrorIs(t, err, ErrInternal)

	_, _, err = svc.ListAll(ctx, identity, utils.NewPaginationParams(1, 20))
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Detail(ctx, identity, 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestParseIncidentDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2024-04-30", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), true},
		{"2024-04-30T14:05", time.Date(2024, 4, 30, 14, 5, 0, 0, time.UTC), true},
		{"2024-04-30T14:05:00+02:00", time.Date(2024, 4, 30, 12, 5, 0, 0, time.UTC), true},
		{"30/04/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := parseIncidentDate(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.True(t, tt.want.Equal(got), tt.raw)
	}
}
