package ai_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/ai"
	"github.com/chromaqa/reports_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleBasedGeneratorFindingsAndComparison(t *testing.T) {
	report := &models.Report{
		ID:             1,
		ReportType:     models.ReportTypeTier1,
		InspectionDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	responses := []models.ChecklistResponse{
		// Safety section finding: high severity.
		{SectionKey: "kitchen", ItemKey: "food_temps_logged", Rating: models.ResponseNo},
		// Regression: high severity regardless of section.
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseNo, PreviousRating: models.ResponseYes},
		// Improvement: surfaces as a point of interest.
		{SectionKey: "classrooms", ItemKey: "cubbies_labeled", Rating: models.ResponseYes, PreviousRating: models.ResponseNo},
		// Unchanged.
		{SectionKey: "classrooms", ItemKey: "ratios_posted", Rating: models.ResponseYes, PreviousRating: models.ResponseYes},
	}

	result, err := ai.NewRuleBasedGenerator().Generate(context.Background(), report, responses)
	require.NoError(t, err)

	require.Len(t, result.Issues, 2)
	for _, issue := range result.Issues {
		assert.Equal(t, models.SeverityHigh, issue.Severity)
	}
	require.Len(t, result.PointsOfInterest, 1)
	assert.Contains(t, result.PointsOfInterest[0], "improved")

	var counts struct {
		Improved  int `json:"improved"`
		Regressed int `json:"regressed"`
		Unchanged int `json:"unchanged"`
		NoHistory int `json:"no_history"`
	}
	require.NoError(t, json.Unmarshal(result.Comparison, &counts))
	assert.Equal(t, 1, counts.Improved)
	assert.Equal(t, 1, counts.Regressed)
	assert.Equal(t, 1, counts.Unchanged)
	assert.Equal(t, 1, counts.NoHistory)

	assert.Contains(t, result.ExecutiveSummary, "June 15, 2026")
	assert.Contains(t, result.ExecutiveSummary, "1 items improved and 1 regressed")
}

func TestRuleBasedGeneratorCleanReport(t *testing.T) {
	report := &models.Report{ID: 2, ReportType: models.ReportTypeTier1, InspectionDate: time.Now()}
	responses := []models.ChecklistResponse{
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseYes},
	}

	result, err := ai.NewRuleBasedGenerator().Generate(context.Background(), report, responses)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Contains(t, result.ExecutiveSummary, "No open findings")
}

func TestRuleBasedGeneratorHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ai.NewRuleBasedGenerator().Generate(ctx, &models.Report{}, nil)
	require.Error(t, err)
}
