package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChecklistResponse is one rated item within one section of one report.
// (report_id, section_key, item_key) is unique per report.
//
// previous_rating/previous_notes are a denormalized snapshot of the matching
// response on the report's previous report, captured when the response is
// first written so comparison views never re-join. BulkSaveResponses is the
// single writer of these columns; saves of an existing triple leave them
// untouched.
type ChecklistResponse struct {
	ID             int            `gorm:"primaryKey" json:"id"`
	ReportID       int            `gorm:"uniqueIndex:idx_response_triple;not null" json:"report_id"`
	SectionKey     string         `gorm:"uniqueIndex:idx_response_triple;size:100;not null" json:"section_key"`
	ItemKey        string         `gorm:"uniqueIndex:idx_response_triple;size:100;not null" json:"item_key"`
	Rating         ResponseRating `gorm:"size:20;not null;default:na" json:"rating"`
	Notes          string         `gorm:"type:text" json:"notes"`
	EvidenceType   EvidenceType   `gorm:"size:30;default:observation" json:"evidence_type"`
	PreviousRating ResponseRating `gorm:"size:20" json:"previous_rating"`
	PreviousNotes  string         `gorm:"type:text" json:"previous_notes"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// ResponseInput is one item's payload in a bulk save.
type ResponseInput struct {
	SectionKey   string         `json:"section_key" validate:"required"`
	ItemKey      string         `json:"item_key" validate:"required"`
	Rating       ResponseRating `json:"rating"`
	Notes        string         `json:"notes"`
	EvidenceType EvidenceType   `json:"evidence_type"`
}

// BulkSaveResponses writes a batch of responses for a report. Existing
// (report_id, section_key, item_key) rows are overwritten deterministically:
// rating, notes and evidence_type are replaced in place, the previous_*
// snapshot keeps its first-write value. New rows snapshot the matching
// response from the report's previous report at this moment.
func BulkSaveResponses(db *gorm.DB, reportID int, inputs []ResponseInput) error {
	report, err := GetReportById(db, reportID)
	if err != nil {
		return err
	}

	for i := range inputs {
		if inputs[i].SectionKey == "" || inputs[i].ItemKey == "" {
			return &ValidationError{Field: "responses", Message: "section_key and item_key are required"}
		}
		if inputs[i].Rating == "" {
			inputs[i].Rating = ResponseNA
		}
		if !inputs[i].Rating.Valid() {
			return &ValidationError{Field: "rating", Message: "invalid response rating"}
		}
		if inputs[i].EvidenceType == "" {
			inputs[i].EvidenceType = EvidenceObservation
		}
	}

	previous := map[string]ChecklistResponse{}
	if report.PreviousReportID != nil {
		prevResponses, err := GetResponsesByReport(db, *report.PreviousReportID)
		if err != nil {
			return err
		}
		for _, r := range prevResponses {
			previous[r.SectionKey+"\x00"+r.ItemKey] = r
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			resp := ChecklistResponse{
				ReportID:     reportID,
				SectionKey:   in.SectionKey,
				ItemKey:      in.ItemKey,
				Rating:       in.Rating,
				Notes:        in.Notes,
				EvidenceType: in.EvidenceType,
			}
			if prev, ok := previous[in.SectionKey+"\x00"+in.ItemKey]; ok {
				resp.PreviousRating = prev.Rating
				resp.PreviousNotes = prev.Notes
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "report_id"},
					{Name: "section_key"},
					{Name: "item_key"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "notes", "evidence_type", "updated_at"}),
			}).Create(&resp).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func GetResponsesByReport(db *gorm.DB, reportID int) ([]ChecklistResponse, error) {
	var responses []ChecklistResponse
	err := db.Where("report_id = ?", reportID).
		Order("section_key ASC").
		Order("item_key ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetResponsesGrouped returns a report's responses keyed by section, each
// section's items in item_key order.
func GetResponsesGrouped(db *gorm.DB, reportID int) (map[string][]ChecklistResponse, error) {
	responses, err := GetResponsesByReport(db, reportID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]ChecklistResponse)
	for _, r := range responses {
		grouped[r.SectionKey] = append(grouped[r.SectionKey], r)
	}
	return grouped, nil
}

// HasChanged reports whether the rating moved against its previous-report
// snapshot. Responses with no snapshot never count as changed.
func (r *ChecklistResponse) HasChanged() bool {
	return r.PreviousRating != "" && r.PreviousRating != r.Rating
}

// IsImprovement reports whether the change against the snapshot moved up the
// comparison ordinal (see RatingRank).
func (r *ChecklistResponse) IsImprovement() bool {
	if !r.HasChanged() {
		return false
	}
	return RatingRank(r.Rating) > RatingRank(r.PreviousRating)
}

// IsRegression is the downward counterpart of IsImprovement.
func (r *ChecklistResponse) IsRegression() bool {
	if !r.HasChanged() {
		return false
	}
	return RatingRank(r.Rating) < RatingRank(r.PreviousRating)
}
