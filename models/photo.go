package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Photo is an image attached to a report. location_tag, when present, joins
// photos across visits for before/after comparison; untagged photos are
// ad-hoc evidence and never participate in comparisons.
type Photo struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	ReportID    int    `gorm:"index;not null" json:"report_id"`
	SectionKey  string `gorm:"size:100;index" json:"section_key"`
	ItemKey     string `gorm:"size:100" json:"item_key"`
	LocationTag string `gorm:"size:100;index" json:"location_tag"`
	// Object name in the external file store.
	FileRef      string    `gorm:"size:500" json:"file_ref"`
	ThumbnailRef string    `gorm:"size:500" json:"thumbnail_ref"`
	Filename     string    `gorm:"size:255" json:"filename"`
	Caption      string    `gorm:"size:500" json:"caption"`
	HasMarkup    bool      `json:"has_markup"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func CreatePhoto(db *gorm.DB, photo *Photo) error {
	if _, err := GetReportById(db, photo.ReportID); err != nil {
		return err
	}
	return db.Create(photo).Error
}

func GetPhotoById(db *gorm.DB, id int) (*Photo, error) {
	var photo Photo
	err := db.First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "photo", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetPhotosByReport returns a report's photos in stable display order
// (section, sort order, then id). Comparison pairing depends on this order
// being deterministic.
func GetPhotosByReport(db *gorm.DB, reportID int) ([]Photo, error) {
	var photos []Photo
	err := db.Where("report_id = ?", reportID).
		Order("section_key ASC").
		Order("sort_order ASC").
		Order("id ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func GetPhotosByItem(db *gorm.DB, reportID int, itemKey string) ([]Photo, error) {
	var photos []Photo
	err := db.Where("report_id = ? AND item_key = ?", reportID, itemKey).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func DeletePhoto(db *gorm.DB, id int) error {
	res := db.Delete(&Photo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "photo", ID: id}
	}
	return nil
}
