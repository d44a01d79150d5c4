package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryIssue is one structured finding extracted by the summary generator.
type SummaryIssue struct {
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
}

// SummaryResult is what a SummaryGenerator produces for one report.
type SummaryResult struct {
	ExecutiveSummary string          `json:"executive_summary"`
	Issues           []SummaryIssue  `json:"issues"`
	PointsOfInterest []string        `json:"points_of_interest"`
	Comparison       json.RawMessage `json:"comparison"`
}

// SummaryGenerator is the external AI collaborator. Failures degrade to "no
// summary", never to a failed report save.
type SummaryGenerator interface {
	Generate(ctx context.Context, report *Report, responses []ChecklistResponse) (*SummaryResult, error)
}

// AISummary persists the generated summary, one row per report.
type AISummary struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	ReportID         int       `gorm:"uniqueIndex;not null" json:"report_id"`
	ExecutiveSummary string    `gorm:"type:text" json:"executive_summary"`
	IssuesJSON       string    `gorm:"type:text" json:"-"`
	POIJSON          string    `gorm:"type:text" json:"-"`
	ComparisonJSON   string    `gorm:"type:text" json:"-"`
	GeneratedAt      time.Time `gorm:"autoCreateTime" json:"generated_at"`
}

// UpsertAISummary stores the result for a report, replacing any prior summary.
func UpsertAISummary(db *gorm.DB, reportID int, result *SummaryResult) (*AISummary, error) {
	if _, err := GetReportById(db, reportID); err != nil {
		return nil, err
	}

	issues, err := json.Marshal(result.Issues)
	if err != nil {
		return nil, err
	}
	poi, err := json.Marshal(result.PointsOfInterest)
	if err != nil {
		return nil, err
	}
	comparison := []byte("{}")
	if len(result.Comparison) > 0 {
		comparison = result.Comparison
	}

	summary := AISummary{
		ReportID:         reportID,
		ExecutiveSummary: result.ExecutiveSummary,
		IssuesJSON:       string(issues),
		POIJSON:          string(poi),
		ComparisonJSON:   string(comparison),
		GeneratedAt:      time.Now(),
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "report_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"executive_summary", "issues_json", "poi_json", "comparison_json", "generated_at",
		}),
	}).Create(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetAISummary returns the stored summary for a report, or nil when none has
// been generated.
func GetAISummary(db *gorm.DB, reportID int) (*AISummary, error) {
	var summary AISummary
	err := db.First(&summary, "report_id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *AISummary) Issues() []SummaryIssue {
	var issues []SummaryIssue
	if s.IssuesJSON != "" {
		_ = json.Unmarshal([]byte(s.IssuesJSON), &issues)
	}
	return issues
}

func (s *AISummary) PointsOfInterest() []string {
	var poi []string
	if s.POIJSON != "" {
		_ = json.Unmarshal([]byte(s.POIJSON), &poi)
	}
	return poi
}

func (s *AISummary) Comparison() json.RawMessage {
	if s.ComparisonJSON == "" {
		return json.RawMessage("{}")
	}
	return json.RawMessage(s.ComparisonJSON)
}
