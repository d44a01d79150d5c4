package utils

import (
	"fmt"
	"math"

	"github.com/chromaqa/reports_backend/models"
	"gorm.io/gorm"
)

// DistanceThresholdMeters is how close an inspector must be to a school for
// GPS verification to pass.
const DistanceThresholdMeters = 500

const earthRadiusMeters = 6371000

// HaversineDistance returns the great-circle distance in meters between two
// coordinates.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// LocationResult is the GPS verification outcome. CanProceed is always true:
// verification informs, it never blocks report creation.
type LocationResult struct {
	Verified   bool   `json:"verified"`
	Distance   int    `json:"distance"`
	Threshold  int    `json:"threshold"`
	SchoolName string `json:"school_name"`
	Message    string `json:"message"`
	Warning    string `json:"warning,omitempty"`
	CanProceed bool   `json:"can_proceed"`
}

// VerifyLocation checks whether the given coordinates fall within the
// distance threshold of the school. Schools without stored coordinates skip
// verification with a warning rather than failing.
func VerifyLocation(db *gorm.DB, schoolID int, latitude, longitude float64) (*LocationResult, error) {
	school, err := models.GetSchoolById(db, schoolID)
	if err != nil {
		return nil, err
	}

	if school.Latitude == nil || school.Longitude == nil {
		return &LocationResult{
			Verified:   true,
			Threshold:  DistanceThresholdMeters,
			SchoolName: school.Name,
			Warning:    "School location not set. Verification skipped.",
			CanProceed: true,
		}, nil
	}

	distance := HaversineDistance(latitude, longitude, *school.Latitude, *school.Longitude)
	rounded := int(math.Round(distance))
	nearby := distance <= DistanceThresholdMeters

	result := LocationResult{
		Verified:   nearby,
		Distance:   rounded,
		Threshold:  DistanceThresholdMeters,
		SchoolName: school.Name,
		CanProceed: true,
	}
	if nearby {
		result.Message = "Location verified! You are at " + school.Name
	} else {
		result.Message = fmt.Sprintf("You appear to be %dm away from %s", rounded, school.Name)
	}
	return &result, nil
}
