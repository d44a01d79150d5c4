package comparison_test

import (
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/comparison"
	"github.com/chromaqa/reports_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	models.MigrateTable(db)
	return db
}

func seedReportPair(t *testing.T, db *gorm.DB) (current, previous *models.Report) {
	t.Helper()
	school := models.School{Name: "Maple Grove", Status: models.SchoolStatusActive}
	require.NoError(t, models.CreateSchool(db, &school))

	prev := models.Report{
		SchoolID:       school.ID,
		UserID:         1,
		ReportType:     models.ReportTypeTier1,
		InspectionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.StatusApproved,
	}
	require.NoError(t, models.CreateReport(db, &prev))

	curr := models.Report{
		SchoolID:         school.ID,
		UserID:           1,
		ReportType:       models.ReportTypeTier1,
		InspectionDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		PreviousReportID: &prev.ID,
	}
	require.NoError(t, models.CreateReport(db, &curr))
	return &curr, &prev
}

func addPhoto(t *testing.T, db *gorm.DB, reportID int, tag string) *models.Photo {
	t.Helper()
	photo := models.Photo{ReportID: reportID, LocationTag: tag}
	require.NoError(t, models.CreatePhoto(db, &photo))
	return &photo
}

func TestComparisonPairsConsumeFirstMatch(t *testing.T) {
	db := newTestDB(t)
	current, previous := seedReportPair(t, db)

	// Current: kitchen, lobby, lobby. Previous: kitchen, playground.
	addPhoto(t, db, current.ID, "kitchen")
	addPhoto(t, db, current.ID, "lobby_entrance")
	addPhoto(t, db, current.ID, "lobby_entrance")
	prevKitchen := addPhoto(t, db, previous.ID, "kitchen")
	addPhoto(t, db, previous.ID, "playground_main")

	pairs, err := comparison.GetComparisonPairs(db, current.ID, previous.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	byTag := map[string][]comparison.Pair{}
	for _, p := range pairs {
		byTag[p.LocationTag] = append(byTag[p.LocationTag], p)
	}

	require.Len(t, byTag["kitchen"], 1)
	require.NotNil(t, byTag["kitchen"][0].Previous)
	assert.Equal(t, prevKitchen.ID, byTag["kitchen"][0].Previous.ID)

	// Two lobby photos, no previous lobby: both pairs unmatched.
	require.Len(t, byTag["lobby_entrance"], 2)
	assert.Nil(t, byTag["lobby_entrance"][0].Previous)
	assert.Nil(t, byTag["lobby_entrance"][1].Previous)

	orphaned, err := comparison.GetOrphanedPreviousPhotos(db, current.ID, previous.ID)
	require.NoError(t, err)
	require.Len(t, orphaned, 1)
	assert.Equal(t, "playground_main", orphaned[0].LocationTag)

	summary, err := comparison.GetComparisonSummary(db, current.ID, previous.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCurrent)
	assert.Equal(t, 1, summary.MatchedPairs)
	assert.Equal(t, 2, summary.NewLocations)
	assert.Equal(t, 1, summary.MissingInNew)
	assert.Equal(t, summary.TotalCurrent, summary.MatchedPairs+summary.NewLocations)
}

func TestComparisonDuplicateTagsPairByInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	current, previous := seedReportPair(t, db)

	currentFirst := addPhoto(t, db, current.ID, "kitchen")
	currentSecond := addPhoto(t, db, current.ID, "kitchen")
	prevFirst := addPhoto(t, db, previous.ID, "kitchen")

	pairs, err := comparison.GetComparisonPairs(db, current.ID, previous.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	// Lowest-id current photo takes the lowest-id previous photo; the second
	// current photo finds the queue empty.
	assert.Equal(t, currentFirst.ID, pairs[0].Current.ID)
	require.NotNil(t, pairs[0].Previous)
	assert.Equal(t, prevFirst.ID, pairs[0].Previous.ID)
	assert.Equal(t, currentSecond.ID, pairs[1].Current.ID)
	assert.Nil(t, pairs[1].Previous)
}

func TestComparisonSkipsUntaggedPhotos(t *testing.T) {
	db := newTestDB(t)
	current, previous := seedReportPair(t, db)

	addPhoto(t, db, current.ID, "")
	addPhoto(t, db, previous.ID, "")
	addPhoto(t, db, current.ID, "kitchen")

	pairs, err := comparison.GetComparisonPairs(db, current.ID, previous.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "kitchen", pairs[0].LocationTag)

	orphaned, err := comparison.GetOrphanedPreviousPhotos(db, current.ID, previous.ID)
	require.NoError(t, err)
	assert.Empty(t, orphaned)
}

func TestPairsSortedByLabel(t *testing.T) {
	db := newTestDB(t)
	current, previous := seedReportPair(t, db)
	_ = previous

	addPhoto(t, db, current.ID, "twos_room")      // Two's Room
	addPhoto(t, db, current.ID, "bulletin_board") // Bulletin Board
	addPhoto(t, db, current.ID, "kitchen")        // Kitchen

	pairs, err := comparison.GetComparisonPairs(db, current.ID, previous.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, "Bulletin Board", pairs[0].LocationLabel)
	assert.Equal(t, "Kitchen", pairs[1].LocationLabel)
	assert.Equal(t, "Two's Room", pairs[2].LocationLabel)
}

func TestLocationLabelFallsBackToTitleCase(t *testing.T) {
	assert.Equal(t, "Kitchen", comparison.LocationLabel("kitchen"))
	assert.Equal(t, "Boiler Room", comparison.LocationLabel("boiler_room"))
}
