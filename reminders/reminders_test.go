package reminders_test

import (
	"context"
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/config"
	"github.com/chromaqa/reports_backend/models"
	"github.com/chromaqa/reports_backend/reminders"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	models.MigrateTable(db)
	return db
}

type recordingSender struct {
	visits []int
}

func (s *recordingSender) ReportSubmitted(ctx context.Context, reportID int) error     { return nil }
func (s *recordingSender) ReportApproved(ctx context.Context, reportID int) error      { return nil }
func (s *recordingSender) ReportNeedsRevision(ctx context.Context, reportID int, feedback string) error {
	return nil
}

func (s *recordingSender) VisitDue(ctx context.Context, schoolID int, schoolName string, daysUntilDue int, overdue bool) error {
	s.visits = append(s.visits, schoolID)
	return nil
}

func newService(t *testing.T, db *gorm.DB, sender *recordingSender) *reminders.Service {
	t.Helper()
	return reminders.NewService(db, logrus.New(), sender, config.Config{
		VisitIntervalDays:     90,
		ReminderThresholdDays: 14,
	})
}

func seedSchoolWithVisit(t *testing.T, db *gorm.DB, name string, status models.SchoolStatus, daysAgo int) *models.School {
	t.Helper()
	school := models.School{Name: name, Status: status}
	require.NoError(t, models.CreateSchool(db, &school))
	if daysAgo >= 0 {
		report := models.Report{
			SchoolID:       school.ID,
			UserID:         1,
			ReportType:     models.ReportTypeTier1,
			InspectionDate: time.Now().AddDate(0, 0, -daysAgo),
			OverallRating:  models.RatingMeets,
			Status:         models.StatusApproved,
		}
		require.NoError(t, models.CreateReport(db, &report))
	}
	return &school
}

func TestNeverVisitedSchoolAlwaysDue(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, &recordingSender{})
	school := seedSchoolWithVisit(t, db, "Maple Grove", models.SchoolStatusActive, -1)

	// Even a strictly-overdue query (threshold 0) includes it.
	due, err := svc.SchoolsDueForVisit(0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, school.ID, due[0].School.ID)
	assert.Equal(t, reminders.NeverVisitedSentinel, due[0].DaysUntilDue)
	assert.True(t, due[0].IsOverdue)
	assert.Nil(t, due[0].LastVisit)
	assert.Nil(t, due[0].LastRating)
}

func TestDueListThresholdAndOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, &recordingSender{})

	overdue := seedSchoolWithVisit(t, db, "Aspen Hills", models.SchoolStatusActive, 120) // ~30 days overdue
	soon := seedSchoolWithVisit(t, db, "Birch Bend", models.SchoolStatusActive, 85)      // due in ~5 days
	fresh := seedSchoolWithVisit(t, db, "Cedar Park", models.SchoolStatusActive, 10)     // due in ~80 days
	never := seedSchoolWithVisit(t, db, "Dogwood", models.SchoolStatusActive, -1)
	_ = fresh

	due, err := svc.SchoolsDueForVisit(14)
	require.NoError(t, err)
	require.Len(t, due, 3)
	// Most overdue first; the never-visited sentinel outranks everything.
	assert.Equal(t, never.ID, due[0].School.ID)
	assert.Equal(t, overdue.ID, due[1].School.ID)
	assert.Equal(t, soon.ID, due[2].School.ID)
	assert.True(t, due[1].IsOverdue)
	assert.False(t, due[2].IsOverdue)
	require.NotNil(t, due[1].LastRating)
	assert.Equal(t, models.RatingMeets, *due[1].LastRating)
}

func TestInactiveSchoolsExcluded(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, &recordingSender{})

	seedSchoolWithVisit(t, db, "Closed Campus", models.SchoolStatusInactive, -1)
	seedSchoolWithVisit(t, db, "Pending Campus", models.SchoolStatusPending, 200)

	due, err := svc.SchoolsDueForVisit(30)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestOverdueSchoolsOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, &recordingSender{})

	overdue := seedSchoolWithVisit(t, db, "Aspen Hills", models.SchoolStatusActive, 100)
	seedSchoolWithVisit(t, db, "Birch Bend", models.SchoolStatusActive, 89) // due in ~1 day

	list, err := svc.OverdueSchools()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, overdue.ID, list[0].School.ID)
}

func TestRunSweepNotifiesEachDueSchool(t *testing.T) {
	db := newTestDB(t)
	sender := &recordingSender{}
	svc := newService(t, db, sender)

	a := seedSchoolWithVisit(t, db, "Aspen Hills", models.SchoolStatusActive, 120)
	b := seedSchoolWithVisit(t, db, "Birch Bend", models.SchoolStatusActive, -1)
	seedSchoolWithVisit(t, db, "Cedar Park", models.SchoolStatusActive, 10)

	require.NoError(t, svc.RunSweep(context.Background()))
	assert.ElementsMatch(t, []int{a.ID, b.ID}, sender.visits)

	// Sweeps are idempotent; re-running reports the same set.
	sender.visits = nil
	require.NoError(t, svc.RunSweep(context.Background()))
	assert.ElementsMatch(t, []int{a.ID, b.ID}, sender.visits)
}
