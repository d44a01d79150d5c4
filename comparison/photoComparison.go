// Package comparison pairs photos across two reports by location tag so a
// reviewer can see the same spot on consecutive visits side by side.
package comparison

import (
	"sort"
	"strings"

	"github.com/chromaqa/reports_backend/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// locationPresets maps the canonical tags inspectors pick from to display
// labels. Free-form tags outside this list are still compared, with a
// title-cased fallback label.
var locationPresets = map[string]string{
	"lobby_entrance":     "Lobby / Entrance",
	"front_desk":         "Front Desk",
	"director_office":    "Director's Office",
	"kitchen":            "Kitchen",
	"kitchen_storage":    "Kitchen Storage",
	"laundry":            "Laundry Room",
	"playground_main":    "Main Playground",
	"playground_infant":  "Infant Playground",
	"playground_toddler": "Toddler Playground",
	"parking_lot":        "Parking Lot",
	"building_exterior":  "Building Exterior",
	"dumpster_area":      "Dumpster Area",
	"hallway_main":       "Main Hallway",
	"infant_a_room":      "Infant A Room",
	"infant_b_room":      "Infant B Room",
	"toddler_room":       "Toddler Room",
	"twos_room":          "Two's Room",
	"threes_room":        "Three's Room",
	"fours_room":         "Four's Room",
	"prek_room":          "Pre-K Room",
	"school_age_room":    "School-Age Room",
	"restroom_child":     "Child Restroom",
	"restroom_adult":     "Adult Restroom",
	"fire_extinguisher":  "Fire Extinguisher",
	"emergency_exit":     "Emergency Exit",
	"bulletin_board":     "Bulletin Board",
	"bus_exterior":       "Bus/Van Exterior",
	"bus_interior":       "Bus/Van Interior",
}

var titleCaser = cases.Title(language.English)

// LocationPresets returns the canonical tag-to-label map.
func LocationPresets() map[string]string {
	presets := make(map[string]string, len(locationPresets))
	for tag, label := range locationPresets {
		presets[tag] = label
	}
	return presets
}

// LocationLabel resolves a tag to its preset label, title-casing unknown tags.
func LocationLabel(tag string) string {
	if label, ok := locationPresets[tag]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(tag, "_", " "))
}

// Pair joins a current photo with its previous-visit counterpart at the same
// location. Previous is nil when the location is new this visit.
type Pair struct {
	LocationTag   string        `json:"location_tag"`
	LocationLabel string        `json:"location_label"`
	Current       *models.Photo `json:"current"`
	Previous      *models.Photo `json:"previous"`
}

// OrphanedPhoto is a previous-visit photo whose location was not retaken.
type OrphanedPhoto struct {
	LocationTag   string        `json:"location_tag"`
	LocationLabel string        `json:"location_label"`
	Photo         *models.Photo `json:"photo"`
}

// Summary counts the pairing outcome for two reports.
type Summary struct {
	TotalCurrent int `json:"total_current"`
	MatchedPairs int `json:"matched_pairs"`
	NewLocations int `json:"new_locations"`
	MissingInNew int `json:"missing_in_new"`
}

// GetComparisonPairs matches each tagged photo in the current report against
// the previous report's photos at the same location. When a location appears
// more than once, previous photos are consumed in id order, each pairing with
// one current photo at most. Untagged photos on either side are skipped.
// Pairs come back sorted by location label.
func GetComparisonPairs(db *gorm.DB, currentReportID, previousReportID int) ([]Pair, error) {
	currentPhotos, err := models.GetPhotosByReport(db, currentReportID)
	if err != nil {
		return nil, err
	}
	previousPhotos, err := models.GetPhotosByReport(db, previousReportID)
	if err != nil {
		return nil, err
	}

	previousByLocation := map[string][]*models.Photo{}
	for i := range previousPhotos {
		photo := &previousPhotos[i]
		if photo.LocationTag == "" {
			continue
		}
		previousByLocation[photo.LocationTag] = append(previousByLocation[photo.LocationTag], photo)
	}

	var pairs []Pair
	for i := range currentPhotos {
		current := &currentPhotos[i]
		if current.LocationTag == "" {
			continue
		}

		var previous *models.Photo
		if queue := previousByLocation[current.LocationTag]; len(queue) > 0 {
			previous = queue[0]
			previousByLocation[current.LocationTag] = queue[1:]
		}

		pairs = append(pairs, Pair{
			LocationTag:   current.LocationTag,
			LocationLabel: LocationLabel(current.LocationTag),
			Current:       current,
			Previous:      previous,
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].LocationLabel < pairs[j].LocationLabel
	})
	return pairs, nil
}

// GetOrphanedPreviousPhotos returns previous-report photos whose location tag
// has no photo at all in the current report.
func GetOrphanedPreviousPhotos(db *gorm.DB, currentReportID, previousReportID int) ([]OrphanedPhoto, error) {
	currentPhotos, err := models.GetPhotosByReport(db, currentReportID)
	if err != nil {
		return nil, err
	}
	previousPhotos, err := models.GetPhotosByReport(db, previousReportID)
	if err != nil {
		return nil, err
	}

	currentLocations := map[string]bool{}
	for _, photo := range currentPhotos {
		if photo.LocationTag != "" {
			currentLocations[photo.LocationTag] = true
		}
	}

	var orphaned []OrphanedPhoto
	for i := range previousPhotos {
		photo := &previousPhotos[i]
		if photo.LocationTag == "" || currentLocations[photo.LocationTag] {
			continue
		}
		orphaned = append(orphaned, OrphanedPhoto{
			LocationTag:   photo.LocationTag,
			LocationLabel: LocationLabel(photo.LocationTag),
			Photo:         photo,
		})
	}
	return orphaned, nil
}

// GetComparisonSummary reduces the pairing to counts. TotalCurrent always
// equals MatchedPairs + NewLocations.
func GetComparisonSummary(db *gorm.DB, currentReportID, previousReportID int) (*Summary, error) {
	pairs, err := GetComparisonPairs(db, currentReportID, previousReportID)
	if err != nil {
		return nil, err
	}
	orphaned, err := GetOrphanedPreviousPhotos(db, currentReportID, previousReportID)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		TotalCurrent: len(pairs),
		MissingInNew: len(orphaned),
	}
	for _, pair := range pairs {
		if pair.Previous != nil {
			summary.MatchedPairs++
		} else {
			summary.NewLocations++
		}
	}
	return &summary, nil
}
