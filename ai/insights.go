// Package ai produces report summaries. The rule-based generator here is the
// built-in fallback; an LLM-backed implementation can replace it behind the
// same interface.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chromaqa/reports_backend/checklists"
	"github.com/chromaqa/reports_backend/models"
)

// safetySections flag findings that escalate straight to high severity.
var safetySections = map[string]bool{
	"playgrounds": true,
	"kitchen":     true,
	"maintenance": true,
	"sleep_nap":   true,
	"vehicles":    true,
}

// RuleBasedGenerator derives a summary from the checklist data alone, no
// external calls. Deterministic, so safe to regenerate at any time.
type RuleBasedGenerator struct{}

func NewRuleBasedGenerator() *RuleBasedGenerator {
	return &RuleBasedGenerator{}
}

type comparisonCounts struct {
	Improved  int `json:"improved"`
	Regressed int `json:"regressed"`
	Unchanged int `json:"unchanged"`
	NoHistory int `json:"no_history"`
}

func (g *RuleBasedGenerator) Generate(ctx context.Context, report *models.Report, responses []models.ChecklistResponse) (*models.SummaryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := models.SummaryResult{}

	var counts comparisonCounts
	yes, no, sometimes := 0, 0, 0
	for _, r := range responses {
		switch r.Rating {
		case models.ResponseYes:
			yes++
		case models.ResponseNo:
			no++
		case models.ResponseSometimes:
			sometimes++
		}

		if r.PreviousRating == "" {
			counts.NoHistory++
		} else if r.IsImprovement() {
			counts.Improved++
			result.PointsOfInterest = append(result.PointsOfInterest,
				fmt.Sprintf("%s improved from %s to %s", itemLabel(report.ReportType, r), r.PreviousRating, r.Rating))
		} else if r.IsRegression() {
			counts.Regressed++
		} else {
			counts.Unchanged++
		}

		if r.Rating == models.ResponseNo {
			result.Issues = append(result.Issues, models.SummaryIssue{
				Description: fmt.Sprintf("%s was not met", itemLabel(report.ReportType, r)),
				Severity:    severityFor(r),
			})
		}
	}

	comparison, err := json.Marshal(counts)
	if err != nil {
		return nil, err
	}
	result.Comparison = comparison

	var b strings.Builder
	fmt.Fprintf(&b, "Inspection on %s rated %d checklist items: %d met, %d partially met, %d not met.",
		report.InspectionDate.Format("January 2, 2006"), yes+no+sometimes, yes, sometimes, no)
	if counts.Improved > 0 || counts.Regressed > 0 {
		fmt.Fprintf(&b, " Compared with the previous visit, %d items improved and %d regressed.",
			counts.Improved, counts.Regressed)
	}
	if no == 0 {
		b.WriteString(" No open findings.")
	}
	result.ExecutiveSummary = b.String()

	return &result, nil
}

func severityFor(r models.ChecklistResponse) models.IssueSeverity {
	if r.IsRegression() {
		return models.SeverityHigh
	}
	if safetySections[r.SectionKey] {
		return models.SeverityHigh
	}
	if r.PreviousRating == models.ResponseNo {
		// Repeat finding.
		return models.SeverityMedium
	}
	return models.SeverityLow
}

func itemLabel(reportType models.ReportType, r models.ChecklistResponse) string {
	if item := checklists.FindItem(reportType, r.SectionKey, r.ItemKey); item != nil {
		return item.Label
	}
	return r.SectionKey + "/" + r.ItemKey
}
