// Package notifications defines the fire-and-forget notification boundary.
// Template rendering and SMTP delivery live outside this system; the core
// only reports that something notification-worthy happened.
package notifications

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender receives workflow and reminder events. Implementations must treat
// delivery as best-effort: errors are returned for logging only and never
// affect the operation that triggered them.
type Sender interface {
	ReportSubmitted(ctx context.Context, reportID int) error
	ReportApproved(ctx context.Context, reportID int) error
	ReportNeedsRevision(ctx context.Context, reportID int, feedback string) error
	VisitDue(ctx context.Context, schoolID int, schoolName string, daysUntilDue int, overdue bool) error
}

// LogSender writes events to the structured log. It is the default sender in
// deployments where email delivery is handled by a separate service.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (s *LogSender) ReportSubmitted(ctx context.Context, reportID int) error {
	s.Logger.WithFields(logrus.Fields{
		"event":    "report_submitted",
		"reportId": reportID,
	}).Info("report submitted for review")
	return nil
}

func (s *LogSender) ReportApproved(ctx context.Context, reportID int) error {
	s.Logger.WithFields(logrus.Fields{
		"event":    "report_approved",
		"reportId": reportID,
	}).Info("report approved")
	return nil
}

func (s *LogSender) ReportNeedsRevision(ctx context.Context, reportID int, feedback string) error {
	s.Logger.WithFields(logrus.Fields{
		"event":    "report_needs_revision",
		"reportId": reportID,
		"feedback": feedback,
	}).Info("report needs revision")
	return nil
}

func (s *LogSender) VisitDue(ctx context.Context, schoolID int, schoolName string, daysUntilDue int, overdue bool) error {
	s.Logger.WithFields(logrus.Fields{
		"event":        "visit_due",
		"schoolId":     schoolID,
		"schoolName":   schoolName,
		"daysUntilDue": daysUntilDue,
		"overdue":      overdue,
	}).Info("school due for QA visit")
	return nil
}
