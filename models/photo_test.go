package models_test

import (
	"testing"
	"time"

	"github.com/chromaqa/reports_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPhotosByItemFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Maple Grove")
	report := seedReport(t, db, school.ID, models.StatusDraft, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	second := models.Photo{ReportID: report.ID, SectionKey: "kitchen", ItemKey: "food_temps_logged", SortOrder: 2}
	first := models.Photo{ReportID: report.ID, SectionKey: "kitchen", ItemKey: "food_temps_logged", SortOrder: 1}
	other := models.Photo{ReportID: report.ID, SectionKey: "kitchen", ItemKey: "chemicals_locked", SortOrder: 0}
	require.NoError(t, models.CreatePhoto(db, &second))
	require.NoError(t, models.CreatePhoto(db, &first))
	require.NoError(t, models.CreatePhoto(db, &other))

	photos, err := models.GetPhotosByItem(db, report.ID, "food_temps_logged")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, first.ID, photos[0].ID)
	assert.Equal(t, second.ID, photos[1].ID)
}
