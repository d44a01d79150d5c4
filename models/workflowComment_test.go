package models_test

import (
	"testing"

	"github.com/chromaqa/reports_backend/models"
	"github.com/stretchr/testify/assert"
)

func TestWorkflowCommentActionLabels(t *testing.T) {
	cases := map[models.CommentAction]string{
		models.CommentSubmitted:         "Submitted for review",
		models.CommentReviewStarted:     "Review started",
		models.CommentApproved:          "Approved",
		models.CommentRevisionRequested: "Revision requested",
	}
	for action, label := range cases {
		comment := models.WorkflowComment{Action: action}
		assert.Equal(t, label, comment.ActionLabel())
	}

	unknown := models.WorkflowComment{Action: models.CommentAction("archived")}
	assert.Equal(t, "archived", unknown.ActionLabel())
}
