package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/chromaqa/reports_backend/analytics"
	"github.com/chromaqa/reports_backend/auth"
	"github.com/chromaqa/reports_backend/config"
	"github.com/chromaqa/reports_backend/models"
	"github.com/chromaqa/reports_backend/notifications"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Engine runs the report approval state machine.
//
// Transitions are applied with an optimistic compare-and-swap: the status
// UPDATE carries the set of legal source states in its WHERE clause, so of
// two concurrent actions against the same report exactly one wins and the
// loser sees InvalidStateError. The audit comment is written in the same
// transaction as the status change; they commit or roll back together.
type Engine struct {
	db            *gorm.DB
	logger        *logrus.Logger
	notifier      notifications.Sender
	notifyTimeout time.Duration
}

func NewEngine(db *gorm.DB, logger *logrus.Logger, notifier notifications.Sender, cfg config.Config) *Engine {
	timeout := time.Duration(cfg.ExternalTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Engine{
		db:            db,
		logger:        logger,
		notifier:      notifier,
		notifyTimeout: timeout,
	}
}

type transition struct {
	from          []models.ReportStatus
	to            models.ReportStatus
	commentAction models.CommentAction
}

var transitions = map[models.WorkflowAction]transition{
	models.ActionSubmit: {
		from:          []models.ReportStatus{models.StatusDraft, models.StatusNeedsRevision},
		to:            models.StatusSubmitted,
		commentAction: models.CommentSubmitted,
	},
	models.ActionStartReview: {
		from:          []models.ReportStatus{models.StatusSubmitted},
		to:            models.StatusUnderReview,
		commentAction: models.CommentReviewStarted,
	},
	models.ActionApprove: {
		from:          []models.ReportStatus{models.StatusSubmitted, models.StatusUnderReview},
		to:            models.StatusApproved,
		commentAction: models.CommentApproved,
	},
	models.ActionRequestRevision: {
		from:          []models.ReportStatus{models.StatusSubmitted, models.StatusUnderReview},
		to:            models.StatusNeedsRevision,
		commentAction: models.CommentRevisionRequested,
	},
}

// Apply performs one workflow action on a report. Check order: report
// exists, caller permission, feedback requirement, then state legality.
// Permission failures surface before any state-machine verdict.
func (e *Engine) Apply(ctx context.Context, actor auth.Context, reportID int, action models.WorkflowAction, comment string) (*models.Report, error) {
	report, err := models.GetReportById(e.db, reportID)
	if err != nil {
		return nil, err
	}

	rule, ok := transitions[action]
	if !ok {
		return nil, &models.ValidationError{Field: "action", Message: "unknown workflow action"}
	}

	if err := e.checkPermission(actor, report, action); err != nil {
		return nil, err
	}

	if action == models.ActionRequestRevision && strings.TrimSpace(comment) == "" {
		return nil, &models.MissingFeedbackError{}
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Report{}).
			Where("id = ? AND status IN ?", reportID, rule.from).
			Update("status", rule.to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the source state was illegal to begin with or a
			// concurrent writer got there first. Re-read for the message.
			current, rerr := models.GetReportById(tx, reportID)
			if rerr != nil {
				return rerr
			}
			return &models.InvalidStateError{Action: action, Status: current.Status}
		}
		return models.AppendWorkflowComment(tx, &models.WorkflowComment{
			ReportID: reportID,
			UserID:   actor.CurrentUserID(),
			Action:   rule.commentAction,
			Comment:  comment,
		})
	})
	if err != nil {
		return nil, err
	}

	report.Status = rule.to
	if action == models.ActionApprove {
		// Approved reports feed the dashboard; drop the cached stats.
		analytics.InvalidateCompanyStats()
	}
	e.notify(ctx, action, report, comment)
	return report, nil
}

func (e *Engine) Submit(ctx context.Context, actor auth.Context, reportID int, comment string) (*models.Report, error) {
	return e.Apply(ctx, actor, reportID, models.ActionSubmit, comment)
}

func (e *Engine) StartReview(ctx context.Context, actor auth.Context, reportID int, comment string) (*models.Report, error) {
	return e.Apply(ctx, actor, reportID, models.ActionStartReview, comment)
}

func (e *Engine) Approve(ctx context.Context, actor auth.Context, reportID int, comment string) (*models.Report, error) {
	return e.Apply(ctx, actor, reportID, models.ActionApprove, comment)
}

func (e *Engine) RequestRevision(ctx context.Context, actor auth.Context, reportID int, feedback string) (*models.Report, error) {
	return e.Apply(ctx, actor, reportID, models.ActionRequestRevision, feedback)
}

// checkPermission gates the state machine. Inspectors may submit their own
// reports; everything else needs the edit-all capability.
func (e *Engine) checkPermission(actor auth.Context, report *models.Report, action models.WorkflowAction) error {
	switch action {
	case models.ActionSubmit:
		if actor.CurrentUserID() == report.UserID || actor.HasCapability(auth.CapEditAllReports) {
			return nil
		}
	case models.ActionStartReview, models.ActionApprove, models.ActionRequestRevision:
		if actor.HasCapability(auth.CapEditAllReports) {
			return nil
		}
	}
	return &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: string(action)}
}

// notify fires the post-transition side effect. Delivery is best-effort with
// a bounded timeout; a failure is logged and never unwinds the transition.
func (e *Engine) notify(ctx context.Context, action models.WorkflowAction, report *models.Report, comment string) {
	if e.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.notifyTimeout)
	defer cancel()

	var err error
	switch action {
	case models.ActionSubmit:
		err = e.notifier.ReportSubmitted(nctx, report.ID)
	case models.ActionApprove:
		err = e.notifier.ReportApproved(nctx, report.ID)
	case models.ActionRequestRevision:
		err = e.notifier.ReportNeedsRevision(nctx, report.ID, comment)
	default:
		return
	}
	if err != nil {
		svcErr := &models.ExternalServiceError{Service: "notifications", Err: err}
		config.LogError(e.logger, "approvalWorkflow.go", "notify", string(action), report.ID, svcErr)
	}
}
