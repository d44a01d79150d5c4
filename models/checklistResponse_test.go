package models_test

import (
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkSaveResponsesOverwritesDeterministically(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Maple Grove")
	report := seedReport(t, db, school.ID, models.StatusDraft, time.Now())

	err := models.BulkSaveResponses(db, report.ID, []models.ResponseInput{
		{SectionKey: "kitchen", ItemKey: "food_temps_logged", Rating: models.ResponseNo, Notes: "no log on fridge"},
	})
	require.NoError(t, err)

	// Same triple again with a new rating: one row, replaced in place.
	err = models.BulkSaveResponses(db, report.ID, []models.ResponseInput{
		{SectionKey: "kitchen", ItemKey: "food_temps_logged", Rating: models.ResponseYes, Notes: "log restarted"},
	})
	require.NoError(t, err)

	responses, err := models.GetResponsesByReport(db, report.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.ResponseYes, responses[0].Rating)
	assert.Equal(t, "log restarted", responses[0].Notes)
}

func TestBulkSaveResponsesSnapshotSurvivesOverwrite(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Maple Grove")

	prev := seedReport(t, db, school.ID, models.StatusApproved, time.Now().AddDate(0, -3, 0))
	err := models.BulkSaveResponses(db, prev.ID, []models.ResponseInput{
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseNo, Notes: "expired copy on wall"},
	})
	require.NoError(t, err)

	current := models.Report{
		SchoolID:         school.ID,
		UserID:           1,
		ReportType:       models.ReportTypeTier1,
		InspectionDate:   time.Now(),
		PreviousReportID: &prev.ID,
	}
	require.NoError(t, models.CreateReport(db, &current))

	err = models.BulkSaveResponses(db, current.ID, []models.ResponseInput{
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseSometimes},
	})
	require.NoError(t, err)

	// Snapshot captured on first write.
	responses, err := models.GetResponsesByReport(db, current.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.ResponseNo, responses[0].PreviousRating)
	assert.Equal(t, "expired copy on wall", responses[0].PreviousNotes)

	// Meanwhile the previous report's response changes. An overwrite of the
	// current triple must keep the original snapshot, not re-read.
	err = models.BulkSaveResponses(db, prev.ID, []models.ResponseInput{
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseYes, Notes: "renewed"},
	})
	require.NoError(t, err)
	err = models.BulkSaveResponses(db, current.ID, []models.ResponseInput{
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseYes},
	})
	require.NoError(t, err)

	responses, err = models.GetResponsesByReport(db, current.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.ResponseYes, responses[0].Rating)
	assert.Equal(t, models.ResponseNo, responses[0].PreviousRating)
	assert.Equal(t, "expired copy on wall", responses[0].PreviousNotes)
}

func TestBulkSaveResponsesValidation(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Maple Grove")
	report := seedReport(t, db, school.ID, models.StatusDraft, time.Now())

	err := models.BulkSaveResponses(db, report.ID, []models.ResponseInput{
		{SectionKey: "", ItemKey: "x", Rating: models.ResponseYes},
	})
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)

	err = models.BulkSaveResponses(db, report.ID, []models.ResponseInput{
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: "excellent"},
	})
	require.ErrorAs(t, err, &validation)

	// Missing rating defaults to na.
	err = models.BulkSaveResponses(db, report.ID, []models.ResponseInput{
		{SectionKey: "lobby", ItemKey: "license_posted"},
	})
	require.NoError(t, err)
	responses, err := models.GetResponsesByReport(db, report.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.ResponseNA, responses[0].Rating)
}

func TestImprovementOrdinal(t *testing.T) {
	resp := models.ChecklistResponse{Rating: models.ResponseNA, PreviousRating: models.ResponseSometimes}
	assert.True(t, resp.IsImprovement(), "na ranks above sometimes")

	resp = models.ChecklistResponse{Rating: models.ResponseYes, PreviousRating: models.ResponseNo}
	assert.True(t, resp.IsImprovement())

	resp = models.ChecklistResponse{Rating: models.ResponseNo, PreviousRating: models.ResponseYes}
	assert.True(t, resp.IsRegression())

	resp = models.ChecklistResponse{Rating: models.ResponseYes, PreviousRating: ""}
	assert.False(t, resp.HasChanged())
	assert.False(t, resp.IsImprovement())
	assert.False(t, resp.IsRegression())
}
