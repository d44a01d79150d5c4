// Package reminders tracks visit cadence: which schools are coming due or
// overdue for their next inspection, and the daily sweep that notifies about
// them.
package reminders

import (
	"context"
	"math"
	"time"

	"github.com/chromaqa/reports_backend/config"
	"github.com/chromaqa/reports_backend/models"
	"github.com/chromaqa/reports_backend/notifications"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "reminders"

// NeverVisitedSentinel marks a school with no reports at all. Such schools are
// due immediately and outrank every dated school in the due list.
const NeverVisitedSentinel = -999

// DueSchool is one row of the due list.
type DueSchool struct {
	School       models.School         `json:"school"`
	LastVisit    *time.Time            `json:"last_visit"`
	LastRating   *models.OverallRating `json:"last_rating"`
	NextDue      time.Time             `json:"next_due"`
	DaysUntilDue int                   `json:"days_until_due"`
	IsOverdue    bool                  `json:"is_overdue"`
}

// Service computes due lists against a fixed visit interval.
type Service struct {
	db       *gorm.DB
	logger   *logrus.Logger
	notifier notifications.Sender

	intervalDays   int
	sweepThreshold int
	sweepHour      int

	// Injectable clock for tests.
	now func() time.Time
}

func NewService(db *gorm.DB, logger *logrus.Logger, notifier notifications.Sender, cfg config.Config) *Service {
	interval := cfg.VisitIntervalDays
	if interval <= 0 {
		interval = config.DefaultVisitIntervalDays
	}
	return &Service{
		db:             db,
		logger:         logger,
		notifier:       notifier,
		intervalDays:   interval,
		sweepThreshold: cfg.ReminderThresholdDays,
		sweepHour:      cfg.ReminderHour,
		now:            time.Now,
	}
}

// SchoolsDueForVisit returns active schools whose next visit falls within
// threshold days (negative days_until_due means overdue), most overdue first.
// A school that has never been visited always qualifies, regardless of
// threshold.
func (s *Service) SchoolsDueForVisit(threshold int) ([]DueSchool, error) {
	schools, err := models.ListSchools(s.db, models.SchoolQuery{Status: models.SchoolStatusActive})
	if err != nil {
		return nil, err
	}

	now := s.now()
	var due []DueSchool
	for _, school := range schools {
		lastReports, err := models.ListReports(s.db, models.ReportQuery{SchoolID: school.ID, Limit: 1})
		if err != nil {
			return nil, err
		}

		var entry DueSchool
		entry.School = school
		if len(lastReports) == 0 {
			entry.NextDue = now
			entry.DaysUntilDue = NeverVisitedSentinel
			entry.IsOverdue = true
		} else {
			last := lastReports[0]
			lastVisit := last.InspectionDate
			entry.LastVisit = &lastVisit
			entry.LastRating = &last.OverallRating
			entry.NextDue = lastVisit.AddDate(0, 0, s.intervalDays)
			entry.DaysUntilDue = int(math.Round(entry.NextDue.Sub(now).Hours() / 24))
			entry.IsOverdue = entry.NextDue.Before(now)
		}

		if entry.DaysUntilDue <= threshold {
			due = append(due, entry)
		}
	}

	// Insertion sort keeps ListSchools's name order as the tiebreak.
	for i := 1; i < len(due); i++ {
		for j := i; j > 0 && due[j].DaysUntilDue < due[j-1].DaysUntilDue; j-- {
			due[j], due[j-1] = due[j-1], due[j]
		}
	}
	return due, nil
}

// OverdueSchools returns only the schools already past their next-due date.
func (s *Service) OverdueSchools() ([]DueSchool, error) {
	due, err := s.SchoolsDueForVisit(0)
	if err != nil {
		return nil, err
	}
	overdue := due[:0]
	for _, entry := range due {
		if entry.IsOverdue {
			overdue = append(overdue, entry)
		}
	}
	return overdue, nil
}

// RunSweep performs one reminder pass: every school inside the sweep threshold
// gets a notification. Send failures are logged and skipped so one bad
// recipient never blocks the rest.
func (s *Service) RunSweep(ctx context.Context) error {
	due, err := s.SchoolsDueForVisit(s.sweepThreshold)
	if err != nil {
		config.LogError(s.logger, moduleName, "RunSweep", "compute due list", nil, err)
		return err
	}

	for _, entry := range due {
		err := s.notifier.VisitDue(ctx, entry.School.ID, entry.School.Name, entry.DaysUntilDue, entry.IsOverdue)
		if err != nil {
			config.LogError(s.logger, moduleName, "RunSweep", "send reminder", map[string]interface{}{
				"school_id": entry.School.ID,
			}, err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"module":     moduleName,
		"due_count":  len(due),
		"threshold":  s.sweepThreshold,
		"checked_at": s.now().Format(time.RFC3339),
	}).Info("reminder sweep finished")
	return nil
}

// StartDailySweep runs RunSweep once a day at the configured hour until ctx is
// cancelled. The first run waits for the next occurrence of that hour.
func (s *Service) StartDailySweep(ctx context.Context) {
	go func() {
		timer := time.NewTimer(s.untilNextSweep())
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				if err := s.RunSweep(ctx); err == nil {
					s.logger.WithField("module", moduleName).Debug("daily sweep ok")
				}
				timer.Reset(s.untilNextSweep())
			}
		}
	}()
}

func (s *Service) untilNextSweep() time.Duration {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.sweepHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
