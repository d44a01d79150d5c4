package models

// SchoolStatus is the lifecycle state of a school site.
type SchoolStatus string

const (
	SchoolStatusActive   SchoolStatus = "active"
	SchoolStatusInactive SchoolStatus = "inactive"
	SchoolStatusPending  SchoolStatus = "pending"
)

func (s SchoolStatus) Valid() bool {
	switch s {
	case SchoolStatusActive, SchoolStatusInactive, SchoolStatusPending:
		return true
	}
	return false
}

// ReportType selects which checklist catalog a visit uses.
type ReportType string

const (
	ReportTypeNewAcquisition ReportType = "new_acquisition"
	ReportTypeTier1          ReportType = "tier1"
	ReportTypeTier1Tier2     ReportType = "tier1_tier2"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeNewAcquisition, ReportTypeTier1, ReportTypeTier1Tier2:
		return true
	}
	return false
}

// OverallRating is the report-level summary rating entered by the inspector
// or approver, distinct from per-item ratings.
type OverallRating string

const (
	RatingExceeds          OverallRating = "exceeds"
	RatingMeets            OverallRating = "meets"
	RatingNeedsImprovement OverallRating = "needs_improvement"
	RatingPending          OverallRating = "pending"
)

func (r OverallRating) Valid() bool {
	switch r {
	case RatingExceeds, RatingMeets, RatingNeedsImprovement, RatingPending:
		return true
	}
	return false
}

// ReportStatus is the approval-workflow state of a report.
type ReportStatus string

const (
	StatusDraft         ReportStatus = "draft"
	StatusSubmitted     ReportStatus = "submitted"
	StatusUnderReview   ReportStatus = "under_review"
	StatusNeedsRevision ReportStatus = "needs_revision"
	StatusApproved      ReportStatus = "approved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusNeedsRevision, StatusApproved:
		return true
	}
	return false
}

// ResponseRating is the per-item checklist rating.
type ResponseRating string

const (
	ResponseYes       ResponseRating = "yes"
	ResponseSometimes ResponseRating = "sometimes"
	ResponseNo        ResponseRating = "no"
	ResponseNA        ResponseRating = "na"
)

func (r ResponseRating) Valid() bool {
	switch r {
	case ResponseYes, ResponseSometimes, ResponseNo, ResponseNA:
		return true
	}
	return false
}

// RatingRank orders response ratings for improvement/regression comparison
// between a response and its previous-report snapshot. The ordering is the
// one report-comparison displays were built against: na ranks above
// sometimes. Do not "fix" it without migrating those displays.
func RatingRank(r ResponseRating) int {
	switch r {
	case ResponseNo:
		return 0
	case ResponseSometimes:
		return 1
	case ResponseNA:
		return 2
	case ResponseYes:
		return 3
	}
	return -1
}

// WorkflowAction is a requested transition on a report.
type WorkflowAction string

const (
	ActionSubmit          WorkflowAction = "submit"
	ActionStartReview     WorkflowAction = "start_review"
	ActionApprove         WorkflowAction = "approve"
	ActionRequestRevision WorkflowAction = "request_revision"
)

// CommentAction is the audit-trail label recorded for a completed transition.
type CommentAction string

const (
	CommentSubmitted         CommentAction = "submitted"
	CommentReviewStarted     CommentAction = "review_started"
	CommentApproved          CommentAction = "approved"
	CommentRevisionRequested CommentAction = "revision_requested"
)

// EvidenceType describes how a checklist response was verified.
type EvidenceType string

const (
	EvidenceObservation EvidenceType = "observation"
	EvidenceDocument    EvidenceType = "document"
	EvidenceInterview   EvidenceType = "interview"
	EvidencePhoto       EvidenceType = "photo"
)

// IssueSeverity grades an AI-extracted issue.
type IssueSeverity string

const (
	SeverityLow    IssueSeverity = "low"
	SeverityMedium IssueSeverity = "medium"
	SeverityHigh   IssueSeverity = "high"
)
