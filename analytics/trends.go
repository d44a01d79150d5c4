// Package analytics turns approved inspection reports into scores, trend
// lines and company-wide dashboards.
package analytics

import (
	"sort"
	"time"

	"github.com/chromaqa/reports_backend/models"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TrendDeadband is the score swing a report must exceed before the trend
// direction moves off stable.
const TrendDeadband = 5

const (
	DirectionImproving = "improving"
	DirectionDeclining = "declining"
	DirectionStable    = "stable"
)

// RatingToValue maps an overall rating onto the 0-100 score scale used for
// trend math. Pending and unknown ratings score zero.
func RatingToValue(rating models.OverallRating) int {
	switch rating {
	case models.RatingExceeds:
		return 100
	case models.RatingMeets:
		return 75
	case models.RatingNeedsImprovement:
		return 50
	default:
		return 0
	}
}

// ResponseScore maps a checklist rating onto the item score scale. The second
// return is false for na, which is excluded from averages entirely.
func ResponseScore(rating models.ResponseRating) (int, bool) {
	switch rating {
	case models.ResponseYes:
		return 100, true
	case models.ResponseSometimes:
		return 50, true
	case models.ResponseNo:
		return 0, true
	default:
		return 0, false
	}
}

// SectionScores averages item scores per section, rounding half up to whole
// points. Sections whose items are all na are omitted.
func SectionScores(responses []models.ChecklistResponse) map[string]int {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, r := range responses {
		score, counted := ResponseScore(r.Rating)
		if !counted {
			continue
		}
		sums[r.SectionKey] = sums[r.SectionKey].Add(decimal.NewFromInt(int64(score)))
		counts[r.SectionKey]++
	}

	scores := make(map[string]int, len(sums))
	for key, sum := range sums {
		avg := sum.Div(decimal.NewFromInt(int64(counts[key]))).Round(0)
		scores[key] = int(avg.IntPart())
	}
	return scores
}

// TrendPoint is one approved report on a school's trend line.
type TrendPoint struct {
	ReportID       int                  `json:"report_id"`
	InspectionDate time.Time            `json:"inspection_date"`
	ReportType     models.ReportType    `json:"report_type"`
	Rating         models.OverallRating `json:"rating"`
	Value          int                  `json:"value"`
	Sections       map[string]int       `json:"sections"`
}

// TrendSummary classifies the whole series: the change from the first point
// to the last, with the deadband applied to that series-level change.
type TrendSummary struct {
	Direction string `json:"direction"`
	Change    int    `json:"change"`
	First     int    `json:"first"`
	Current   int    `json:"current"`
}

// SchoolTrend is the trend payload for one school.
type SchoolTrend struct {
	SchoolID   int          `json:"school_id"`
	SchoolName string       `json:"school_name"`
	Points     []TrendPoint `json:"points"`
	Summary    TrendSummary `json:"summary"`
}

// GetSchoolTrend returns up to limit approved reports for a school in
// chronological order, each carrying its per-section scores, plus a summary
// of the series. A trend with fewer than two points is always stable with
// zero change.
func GetSchoolTrend(db *gorm.DB, schoolID, limit int) (*SchoolTrend, error) {
	if limit <= 0 {
		limit = 10
	}
	school, err := models.GetSchoolById(db, schoolID)
	if err != nil {
		return nil, err
	}
	reports, err := models.ListReports(db, models.ReportQuery{
		SchoolID:  schoolID,
		Status:    models.StatusApproved,
		OrderBy:   "inspection_date",
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}
	if len(reports) > limit {
		reports = reports[len(reports)-limit:]
	}

	points := make([]TrendPoint, 0, len(reports))
	for _, report := range reports {
		responses, err := models.GetResponsesByReport(db, report.ID)
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{
			ReportID:       report.ID,
			InspectionDate: report.InspectionDate,
			ReportType:     report.ReportType,
			Rating:         report.OverallRating,
			Value:          RatingToValue(report.OverallRating),
			Sections:       SectionScores(responses),
		})
	}
	return &SchoolTrend{
		SchoolID:   schoolID,
		SchoolName: school.Name,
		Points:     points,
		Summary:    SummarizeTrend(points),
	}, nil
}

// SummarizeTrend reduces an ordered series to its trend summary.
func SummarizeTrend(points []TrendPoint) TrendSummary {
	summary := TrendSummary{Direction: DirectionStable}
	if len(points) < 2 {
		return summary
	}
	summary.First = points[0].Value
	summary.Current = points[len(points)-1].Value
	summary.Change = summary.Current - summary.First
	if summary.Change > TrendDeadband {
		summary.Direction = DirectionImproving
	} else if summary.Change < -TrendDeadband {
		summary.Direction = DirectionDeclining
	}
	return summary
}

// RegionalEntry ranks one school inside a regional comparison.
type RegionalEntry struct {
	SchoolID       int                  `json:"school_id"`
	SchoolName     string               `json:"school_name"`
	Region         string               `json:"region"`
	Rating         models.OverallRating `json:"rating"`
	Score          int                  `json:"score"`
	InspectionDate time.Time            `json:"inspection_date"`
}

// GetRegionalComparison ranks active schools by their latest approved rating,
// highest score first. Schools without an approved report are excluded rather
// than shown at zero. An empty region compares the whole company.
func GetRegionalComparison(db *gorm.DB, region string) ([]RegionalEntry, error) {
	schools, err := models.ListSchools(db, models.SchoolQuery{
		Status: models.SchoolStatusActive,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]RegionalEntry, 0, len(schools))
	for _, school := range schools {
		latest, err := models.LatestApprovedReport(db, school.ID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}
		entries = append(entries, RegionalEntry{
			SchoolID:       school.ID,
			SchoolName:     school.Name,
			Region:         school.Region,
			Rating:         latest.OverallRating,
			Score:          RatingToValue(latest.OverallRating),
			InspectionDate: latest.InspectionDate,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

// MonthBucket counts approved reports in one calendar month.
type MonthBucket struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// CommonIssue is a checklist item that repeatedly rates no across all
// reports, whatever their workflow status.
type CommonIssue struct {
	SectionKey string `json:"section_key"`
	ItemKey    string `json:"item_key"`
	Count      int    `json:"count"`
}

// CompanyStats is the org-wide dashboard payload.
type CompanyStats struct {
	TotalReports           int                          `json:"total_reports"`
	ActiveSchools          int                          `json:"active_schools"`
	RatingHistogram        map[models.OverallRating]int `json:"rating_histogram"`
	ComplianceDistribution map[models.OverallRating]int `json:"compliance_distribution"`
	MonthlyReports         []MonthBucket                `json:"monthly_reports"`
	CommonIssues           []CommonIssue                `json:"common_issues"`
	GeneratedAt            time.Time                    `json:"generated_at"`
}

const companyStatsCacheKey = "company_stats"

var statsCache = gocache.New(5*time.Minute, 10*time.Minute)

// InvalidateCompanyStats drops the cached dashboard so the next read
// recomputes it. Called after a report is approved.
func InvalidateCompanyStats() {
	statsCache.Delete(companyStatsCacheKey)
}

// GetCompanyStats builds the org-wide dashboard over approved reports,
// cached for five minutes. Monthly buckets cover the trailing twelve months,
// oldest first, including empty months.
func GetCompanyStats(db *gorm.DB, issueLimit int) (*CompanyStats, error) {
	if cached, ok := statsCache.Get(companyStatsCacheKey); ok {
		return cached.(*CompanyStats), nil
	}
	if issueLimit <= 0 {
		issueLimit = 5
	}

	stats := CompanyStats{
		RatingHistogram: map[models.OverallRating]int{},
		GeneratedAt:     time.Now(),
	}

	activeSchools, err := models.CountSchools(db, models.SchoolStatusActive)
	if err != nil {
		return nil, err
	}
	stats.ActiveSchools = int(activeSchools)

	type ratingRow struct {
		OverallRating models.OverallRating
		Count         int
	}
	var ratingRows []ratingRow
	err = db.Model(&models.Report{}).
		Select("overall_rating, COUNT(*) as count").
		Where("status = ?", models.StatusApproved).
		Group("overall_rating").
		Find(&ratingRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range ratingRows {
		stats.RatingHistogram[row.OverallRating] = row.Count
		stats.TotalReports += row.Count
	}

	// Month bucketing happens here rather than in SQL so the same query runs
	// on mysql and sqlite.
	windowStart := time.Now().AddDate(0, -11, 0)
	windowStart = time.Date(windowStart.Year(), windowStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	err = db.Model(&models.Report{}).
		Where("status = ? AND inspection_date >= ?", models.StatusApproved, windowStart).
		Pluck("inspection_date", &dates).Error
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, d := range dates {
		counts[d.Format("2006-01")]++
	}
	for i := 0; i < 12; i++ {
		month := windowStart.AddDate(0, i, 0).Format("2006-01")
		stats.MonthlyReports = append(stats.MonthlyReports, MonthBucket{
			Month: month,
			Count: counts[month],
		})
	}

	err = db.Model(&models.ChecklistResponse{}).
		Select("section_key, item_key, COUNT(*) as count").
		Where("rating = ?", models.ResponseNo).
		Group("section_key, item_key").
		Order("count DESC").
		Limit(issueLimit).
		Find(&stats.CommonIssues).Error
	if err != nil {
		return nil, err
	}

	stats.ComplianceDistribution, err = GetComplianceDistribution(db)
	if err != nil {
		return nil, err
	}

	statsCache.Set(companyStatsCacheKey, &stats, gocache.DefaultExpiration)
	return &stats, nil
}

// GetComplianceDistribution counts each school's current standing: the rating
// on its most recent approved report, pending ratings excluded.
func GetComplianceDistribution(db *gorm.DB) (map[models.OverallRating]int, error) {
	latest := db.Model(&models.Report{}).
		Select("school_id, MAX(inspection_date) AS latest_date").
		Where("status = ?", models.StatusApproved).
		Group("school_id")

	type ratingRow struct {
		OverallRating models.OverallRating
		Count         int
	}
	var rows []ratingRow
	err := db.Model(&models.Report{}).
		Select("reports.overall_rating, COUNT(*) as count").
		Joins("JOIN (?) latest ON latest.school_id = reports.school_id AND latest.latest_date = reports.inspection_date", latest).
		Where("reports.status = ? AND reports.overall_rating != ?", models.StatusApproved, models.RatingPending).
		Group("reports.overall_rating").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := map[models.OverallRating]int{
		models.RatingExceeds:          0,
		models.RatingMeets:            0,
		models.RatingNeedsImprovement: 0,
	}
	for _, row := range rows {
		dist[row.OverallRating] = row.Count
	}
	return dist, nil
}
