package models

import "fmt"

// NotFoundError reports a missing School/Report/Photo reference.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InvalidStateError reports a workflow transition that is illegal from the
// report's current status, including transitions lost to a concurrent writer.
type InvalidStateError struct {
	Action WorkflowAction
	Status ReportStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("action %q is not allowed while report is %q", e.Action, e.Status)
}

// MissingFeedbackError reports a revision request without actionable feedback.
type MissingFeedbackError struct{}

func (e *MissingFeedbackError) Error() string {
	return "revision requests require feedback for the inspector"
}

// PermissionDeniedError reports a failed capability check. It is always
// distinct from state-machine illegality and is raised before the state
// machine runs.
type PermissionDeniedError struct {
	UserID int
	Action string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("user %d may not %s", e.UserID, e.Action)
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExternalServiceError wraps a failure from a best-effort collaborator
// (notifications, AI summary generation, file storage).
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
