package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkflowComment is one row in the append-only workflow audit trail. Rows
// are written inside the same transaction as the status change they record
// and are never updated or deleted afterwards.
type WorkflowComment struct {
	ID        int           `gorm:"primaryKey" json:"id"`
	ReportID  int           `gorm:"index;not null" json:"report_id"`
	UserID    int           `gorm:"not null" json:"user_id"`
	Action    CommentAction `gorm:"size:50;not null" json:"action"`
	Comment   string        `gorm:"type:text" json:"comment"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func AppendWorkflowComment(tx *gorm.DB, comment *WorkflowComment) error {
	return tx.Create(comment).Error
}

// GetWorkflowComments lists a report's audit trail, newest first.
func GetWorkflowComments(db *gorm.DB, reportID int) ([]WorkflowComment, error) {
	var comments []WorkflowComment
	err := db.Where("report_id = ?", reportID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ActionLabel is the display label for an audit action.
func (c *WorkflowComment) ActionLabel() string {
	switch c.Action {
	case CommentSubmitted:
		return "Submitted for review"
	case CommentReviewStarted:
		return "Review started"
	case CommentApproved:
		return "Approved"
	case CommentRevisionRequested:
		return "Revision requested"
	}
	return string(c.Action)
}
