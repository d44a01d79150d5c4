package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Report is one inspection visit record for a school. It owns its checklist
// responses, photos and AI summary; previous_report_id is a reference to the
// most recent prior visit used for comparison, never ownership.
type Report struct {
	ID               int           `gorm:"primaryKey" json:"id"`
	SchoolID         int           `gorm:"index;not null" json:"school_id" validate:"required"`
	UserID           int           `gorm:"index;not null" json:"user_id"`
	ReportType       ReportType    `gorm:"size:30;not null" json:"report_type" validate:"required"`
	InspectionDate   time.Time     `gorm:"index;not null" json:"inspection_date"`
	PreviousReportID *int          `json:"previous_report_id"`
	OverallRating    OverallRating `gorm:"size:30;default:pending" json:"overall_rating"`
	ClosingNotes     string        `gorm:"type:text" json:"closing_notes"`
	Status           ReportStatus  `gorm:"size:20;index;default:draft" json:"status"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// ReportQuery filters ListReports.
type ReportQuery struct {
	SchoolID   int
	UserID     int
	ReportType ReportType
	Status     ReportStatus
	OrderBy    string // inspection_date or created_at
	Ascending  bool
	Limit      int
	Offset     int
}

func CreateReport(db *gorm.DB, report *Report) error {
	if report.OverallRating == "" {
		report.OverallRating = RatingPending
	}
	if report.Status == "" {
		report.Status = StatusDraft
	}
	if !report.ReportType.Valid() {
		return &ValidationError{Field: "report_type", Message: "invalid report type"}
	}
	if !report.OverallRating.Valid() {
		return &ValidationError{Field: "overall_rating", Message: "invalid overall rating"}
	}
	if !report.Status.Valid() {
		return &ValidationError{Field: "status", Message: "invalid report status"}
	}
	if report.InspectionDate.IsZero() {
		return &ValidationError{Field: "inspection_date", Message: "inspection date is required"}
	}
	if _, err := GetSchoolById(db, report.SchoolID); err != nil {
		return err
	}
	if report.PreviousReportID != nil {
		if _, err := GetReportById(db, *report.PreviousReportID); err != nil {
			return err
		}
	}
	return db.Create(report).Error
}

func GetReportById(db *gorm.DB, id int) (*Report, error) {
	var report Report
	err := db.First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "report", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func ListReports(db *gorm.DB, q ReportQuery) ([]Report, error) {
	tx := db.Model(&Report{})
	if q.SchoolID > 0 {
		tx = tx.Where("school_id = ?", q.SchoolID)
	}
	if q.UserID > 0 {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.ReportType != "" {
		tx = tx.Where("report_type = ?", q.ReportType)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	orderBy := q.OrderBy
	if orderBy != "inspection_date" && orderBy != "created_at" {
		orderBy = "inspection_date"
	}
	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}
	tx = tx.Order(orderBy + " " + dir).Order("id " + dir)

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var reports []Report
	if err := tx.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// LatestApprovedReport returns the most recent approved report for a school,
// or nil when the school has none.
func LatestApprovedReport(db *gorm.DB, schoolID int) (*Report, error) {
	reports, err := ListReports(db, ReportQuery{
		SchoolID: schoolID,
		Status:   StatusApproved,
		Limit:    1,
	})
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return &reports[0], nil
}

func UpdateReport(db *gorm.DB, report *Report) error {
	if !report.ReportType.Valid() {
		return &ValidationError{Field: "report_type", Message: "invalid report type"}
	}
	if !report.OverallRating.Valid() {
		return &ValidationError{Field: "overall_rating", Message: "invalid overall rating"}
	}
	return db.Save(report).Error
}

// DeleteReport removes the report and everything it owns. Weak links from
// later reports (previous_report_id) are cleared, not cascaded.
func DeleteReport(db *gorm.DB, id int) error {
	if _, err := GetReportById(db, id); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&ChecklistResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&AISummary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&WorkflowComment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Report{}).
			Where("previous_report_id = ?", id).
			Update("previous_report_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Report{}, "id = ?", id).Error
	})
}
