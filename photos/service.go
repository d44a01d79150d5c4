// Package photos handles photo ingestion: thumbnailing, object storage and
// the database record tying an image to a report.
package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/chromaqa/reports_backend/config"
	"github.com/chromaqa/reports_backend/models"
	"github.com/chromaqa/reports_backend/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "photos"

var errStoreDisabled = errors.New("object storage is not configured")

// thumbnailMaxDim bounds the longest edge of generated thumbnails.
const thumbnailMaxDim = 400

// Service coordinates the file store and the photos table.
type Service struct {
	db     *gorm.DB
	store  storage.FileStore
	logger *logrus.Logger
}

func NewService(db *gorm.DB, store storage.FileStore, logger *logrus.Logger) *Service {
	return &Service{db: db, store: store, logger: logger}
}

// AttachInput is one uploaded image plus its report placement.
type AttachInput struct {
	ReportID    int
	SectionKey  string
	ItemKey     string
	LocationTag string
	Caption     string
	Filename    string
	HasMarkup   bool
	SortOrder   int
	Data        []byte
}

// Attach stores the image and a generated thumbnail, then records the photo
// against the report. The original bytes are stored untouched; only the
// thumbnail is re-encoded.
func (s *Service) Attach(ctx context.Context, input AttachInput) (*models.Photo, error) {
	if input.ReportID <= 0 {
		return nil, &models.ValidationError{Field: "report_id", Message: "report id is required"}
	}
	if len(input.Data) == 0 {
		return nil, &models.ValidationError{Field: "data", Message: "image data is empty"}
	}
	if s.store == nil {
		return nil, &models.ExternalServiceError{Service: "storage", Err: errStoreDisabled}
	}
	report, err := models.GetReportById(s.db, input.ReportID)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(input.Data))
	if err != nil {
		return nil, &models.ValidationError{Field: "data", Message: "unsupported image format"}
	}

	thumb := imaging.Fit(img, thumbnailMaxDim, thumbnailMaxDim, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(path.Ext(input.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("reports/%d/%s%s", report.ID, id, ext)
	thumbName := fmt.Sprintf("reports/%d/thumbs/%s.jpg", report.ID, id)

	if err := s.store.Store(ctx, objectName, input.Data, contentTypeFor(ext)); err != nil {
		return nil, &models.ExternalServiceError{Service: "storage", Err: err}
	}
	if err := s.store.Store(ctx, thumbName, thumbBuf.Bytes(), "image/jpeg"); err != nil {
		// Orphaned full-size object; log and keep going, the record is what matters.
		config.LogError(s.logger, moduleName, "Attach", "store thumbnail", objectName, err)
		thumbName = ""
	}

	photo := models.Photo{
		ReportID:     report.ID,
		SectionKey:   input.SectionKey,
		ItemKey:      input.ItemKey,
		LocationTag:  input.LocationTag,
		FileRef:      objectName,
		ThumbnailRef: thumbName,
		Filename:     input.Filename,
		Caption:      input.Caption,
		HasMarkup:    input.HasMarkup,
		SortOrder:    input.SortOrder,
	}
	if err := models.CreatePhoto(s.db, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Remove deletes the photo record, then best-effort deletes the stored
// objects. A storage failure is logged, never surfaced; the record is already
// gone.
func (s *Service) Remove(ctx context.Context, photoID int) error {
	photo, err := models.GetPhotoById(s.db, photoID)
	if err != nil {
		return err
	}
	if err := models.DeletePhoto(s.db, photoID); err != nil {
		return err
	}

	if s.store == nil {
		return nil
	}
	for _, object := range []string{photo.FileRef, photo.ThumbnailRef} {
		if object == "" {
			continue
		}
		if err := s.store.Delete(ctx, object); err != nil {
			config.LogError(s.logger, moduleName, "Remove", "delete object", object, err)
		}
	}
	return nil
}

// URLFor resolves a photo's stored refs into access URLs.
func (s *Service) URLFor(photo *models.Photo) (fileURL, thumbURL string) {
	if s.store == nil {
		return "", ""
	}
	if photo.FileRef != "" {
		fileURL = s.store.URL(photo.FileRef)
	}
	if photo.ThumbnailRef != "" {
		thumbURL = s.store.URL(photo.ThumbnailRef)
	}
	return fileURL, thumbURL
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
