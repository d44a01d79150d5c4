package models_test

import (
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/models"
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
	// A fresh pooled connection would see an empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	models.MigrateTable(db)
	return db
}

func seedSchool(t *testing.T, db *gorm.DB, name string) *models.School {
	t.Helper()
	school := models.School{Name: name, Region: "southeast", Status: models.SchoolStatusActive}
	require.NoError(t, models.CreateSchool(db, &school))
	return &school
}

func seedReport(t *testing.T, db *gorm.DB, schoolID int, status models.ReportStatus, date time.Time) *models.Report {
	t.Helper()
	report := models.Report{
		SchoolID:       schoolID,
		UserID:         1,
		ReportType:     models.ReportTypeTier1,
		InspectionDate: date,
		Status:         status,
	}
	require.NoError(t, models.CreateReport(db, &report))
	return &report
}
