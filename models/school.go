package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// School is one childcare site under QA inspection.
type School struct {
	ID           int          `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:255;not null" json:"name" validate:"required"`
	Location     string       `gorm:"size:255" json:"location"`
	Region       string       `gorm:"size:100;index" json:"region"`
	AcquiredDate *time.Time   `json:"acquired_date"`
	Status       SchoolStatus `gorm:"size:20;index;default:active" json:"status"`
	Latitude     *float64     `json:"latitude"`
	Longitude    *float64     `json:"longitude"`
	// External storage folder holding this school's photo objects.
	StorageFolder string    `gorm:"size:255" json:"storage_folder"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SchoolQuery filters ListSchools.
type SchoolQuery struct {
	Status SchoolStatus
	Region string
	Limit  int
	Offset int
}

func CreateSchool(db *gorm.DB, school *School) error {
	if strings.TrimSpace(school.Name) == "" {
		return &ValidationError{Field: "name", Message: "school name is required"}
	}
	if school.Status == "" {
		school.Status = SchoolStatusActive
	}
	if !school.Status.Valid() {
		return &ValidationError{Field: "status", Message: "invalid school status"}
	}
	return db.Create(school).Error
}

func GetSchoolById(db *gorm.DB, id int) (*School, error) {
	var school School
	err := db.First(&school, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "school", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func ListSchools(db *gorm.DB, q SchoolQuery) ([]School, error) {
	tx := db.Model(&School{}).Order("name ASC")
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Region != "" {
		tx = tx.Where("region = ?", q.Region)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	var schools []School
	if err := tx.Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func CountSchools(db *gorm.DB, status SchoolStatus) (int64, error) {
	tx := db.Model(&School{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DistinctRegions lists the non-empty regions in use, ordered by name.
func DistinctRegions(db *gorm.DB) ([]string, error) {
	var regions []string
	err := db.Model(&School{}).
		Where("region <> ''").
		Distinct("region").
		Order("region ASC").
		Pluck("region", &regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

func UpdateSchool(db *gorm.DB, school *School) error {
	if strings.TrimSpace(school.Name) == "" {
		return &ValidationError{Field: "name", Message: "school name is required"}
	}
	if !school.Status.Valid() {
		return &ValidationError{Field: "status", Message: "invalid school status"}
	}
	return db.Save(school).Error
}

func DeleteSchool(db *gorm.DB, id int) error {
	res := db.Delete(&School{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "school", ID: id}
	}
	return nil
}
