package checklists_test

import (
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/checklists"
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

func TestChecklistForTypeTierComposition(t *testing.T) {
	tier1 := checklists.ChecklistForType(models.ReportTypeTier1)
	for _, section := range tier1.Sections {
		assert.Equal(t, 1, section.Tier)
	}

	combined := checklists.ChecklistForType(models.ReportTypeTier1Tier2)
	assert.Greater(t, len(combined.Sections), len(tier1.Sections))
	// Tier 1 sections lead, CQI sections follow.
	for i, section := range combined.Sections {
		if i < len(tier1.Sections) {
			assert.Equal(t, 1, section.Tier)
		} else {
			assert.Equal(t, 2, section.Tier)
		}
	}

	// New-acquisition visits run the standard Tier 1 sweep.
	assert.Equal(t, len(tier1.Sections), len(checklists.ChecklistForType(models.ReportTypeNewAcquisition).Sections))
}

func TestUnknownTypeFallsBackToTier1(t *testing.T) {
	fallback := checklists.ChecklistForType("surprise_audit")
	tier1 := checklists.ChecklistForType(models.ReportTypeTier1)
	assert.Equal(t, tier1.Name, fallback.Name)
	assert.Equal(t, len(tier1.Sections), len(fallback.Sections))
}

func TestAllItemsFlatMatchesCount(t *testing.T) {
	for _, reportType := range []models.ReportType{models.ReportTypeTier1, models.ReportTypeTier1Tier2} {
		flat := checklists.AllItemsFlat(reportType)
		assert.Equal(t, checklists.CountItems(reportType), len(flat))

		seen := map[string]bool{}
		for _, item := range flat {
			key := item.SectionKey + "/" + item.ItemKey
			assert.False(t, seen[key], "duplicate catalog key %s", key)
			seen[key] = true
		}
	}
}

func TestFindSectionAndItem(t *testing.T) {
	section := checklists.FindSection(models.ReportTypeTier1, "kitchen")
	require.NotNil(t, section)
	assert.Equal(t, "Kitchen / Laundry", section.Name)

	item := checklists.FindItem(models.ReportTypeTier1, "kitchen", "food_temps_logged")
	require.NotNil(t, item)
	assert.Equal(t, models.EvidenceDocument, item.Evidence)

	assert.Nil(t, checklists.FindSection(models.ReportTypeTier1, "cqi_leadership"))
	assert.NotNil(t, checklists.FindSection(models.ReportTypeTier1Tier2, "cqi_leadership"))
	assert.Nil(t, checklists.FindItem(models.ReportTypeTier1, "kitchen", "nope"))
}

func TestProgressStatsTreatsNAAsUnanswered(t *testing.T) {
	db := newTestDB(t)

	school := models.School{Name: "Maple Grove", Status: models.SchoolStatusActive}
	require.NoError(t, models.CreateSchool(db, &school))
	report := models.Report{
		SchoolID:       school.ID,
		UserID:         1,
		ReportType:     models.ReportTypeTier1,
		InspectionDate: time.Now(),
	}
	require.NoError(t, models.CreateReport(db, &report))

	require.NoError(t, models.BulkSaveResponses(db, report.ID, []models.ResponseInput{
		{SectionKey: "kitchen", ItemKey: "food_temps_logged", Rating: models.ResponseYes},
		{SectionKey: "kitchen", ItemKey: "chemicals_locked", Rating: models.ResponseSometimes},
		{SectionKey: "lobby", ItemKey: "license_posted", Rating: models.ResponseNo},
		{SectionKey: "vehicles", ItemKey: "inspection_current", Rating: models.ResponseNA},
	}))

	stats, err := checklists.GetProgressStats(db, report.ID, models.ReportTypeTier1)
	require.NoError(t, err)
	assert.Equal(t, checklists.CountItems(models.ReportTypeTier1), stats.Total)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 1, stats.Yes)
	assert.Equal(t, 1, stats.Sometimes)
	assert.Equal(t, 1, stats.No)
	assert.Equal(t, int(float64(3)/float64(stats.Total)*100+0.5), stats.Percentage)
}
