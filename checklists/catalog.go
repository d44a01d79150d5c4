// Package checklists holds the static inspection catalog: which sections and
// items an inspector works through for a given report type. Tier 1 is the
// standard QA sweep; Tier 2 adds the continuous-quality-improvement sections
// and applies only to the combined report type.
package checklists

import (
	"time"

	"github.com/chromaqa/reports_backend/models"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Item struct {
	Key      string              `json:"key"`
	Label    string              `json:"label"`
	Evidence models.EvidenceType `json:"evidence"`
}

type Section struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tier        int    `json:"tier"`
	Items       []Item `json:"items"`
}

type Checklist struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// FlatItem is one catalog item with its section context attached.
type FlatItem struct {
	SectionKey  string              `json:"section_key"`
	SectionName string              `json:"section_name"`
	ItemKey     string              `json:"item_key"`
	ItemLabel   string              `json:"item_label"`
	Evidence    models.EvidenceType `json:"evidence"`
	Tier        int                 `json:"tier"`
}

var tier1Sections = []Section{
	{
		Key:         "curb_appeal",
		Name:        "Curb Appeal",
		Description: "First impression of the site from the street and parking lot",
		Tier:        1,
		Items: []Item{
			{Key: "signage_clean", Label: "Exterior signage is clean and in good repair", Evidence: models.EvidencePhoto},
			{Key: "grounds_free_of_litter", Label: "Grounds and parking lot are free of litter", Evidence: models.EvidenceObservation},
			{Key: "landscaping_maintained", Label: "Landscaping is trimmed and maintained", Evidence: models.EvidencePhoto},
			{Key: "entry_welcoming", Label: "Entry area is welcoming and well lit", Evidence: models.EvidenceObservation},
		},
	},
	{
		Key:         "lobby",
		Name:        "Lobby / Office",
		Description: "Front desk, family information and licensing displays",
		Tier:        1,
		Items: []Item{
			{Key: "license_posted", Label: "Current license and inspection reports are posted", Evidence: models.EvidenceObservation},
			{Key: "front_desk_staffed", Label: "Front desk is staffed and secure entry is enforced", Evidence: models.EvidenceObservation},
			{Key: "family_board_current", Label: "Family information board is current", Evidence: models.EvidencePhoto},
			{Key: "lobby_clean", Label: "Lobby is clean and free of clutter", Evidence: models.EvidenceObservation},
			{Key: "tour_materials_stocked", Label: "Enrollment and tour materials are stocked", Evidence: models.EvidenceObservation},
		},
	},
	{
		Key:         "classrooms",
		Name:        "Classrooms",
		Description: "Learning environments across all age groups",
		Tier:        1,
		Items: []Item{
			{Key: "ratios_posted", Label: "Ratios are posted and in compliance", Evidence: models.EvidenceObservation},
			{Key: "daily_schedule_posted", Label: "Daily schedule and lesson plans are posted", Evidence: models.EvidenceObservation},
			{Key: "materials_accessible", Label: "Age-appropriate materials are accessible to children", Evidence: models.EvidenceObservation},
			{Key: "cubbies_labeled", Label: "Cubbies are labeled and organized", Evidence: models.EvidencePhoto},
			{Key: "diapering_procedure", Label: "Diapering procedure is posted and followed", Evidence: models.EvidenceObservation},
			{Key: "classroom_clean", Label: "Room is clean, organized and odor free", Evidence: models.EvidenceObservation},
		},
	},
	{
		Key:         "playgrounds",
		Name:        "Playgrounds",
		Description: "Outdoor play areas and equipment",
		Tier:        1,
		Items: []Item{
			{Key: "fall_zones_adequate", Label: "Fall zone surfacing is adequate and raked", Evidence: models.EvidencePhoto},
			{Key: "equipment_condition", Label: "Equipment is free of damage and entrapment hazards", Evidence: models.EvidencePhoto},
			{Key: "fencing_secure", Label: "Fencing and gates are secure", Evidence: models.EvidenceObservation},
			{Key: "no_standing_water", Label: "Area is free of standing water and debris", Evidence: models.EvidenceObservation},
			{Key: "shade_available", Label: "Shade is available for all age groups", Evidence: models.EvidenceObservation},
		},
	},
	{
		Key:         "kitchen",
		Name:        "Kitchen / Laundry",
		Description: "Food service and laundry areas",
		Tier:        1,
		Items: []Item{
			{Key: "food_temps_logged", Label: "Refrigerator and food temperatures are logged daily", Evidence: models.EvidenceDocument},
			{Key: "chemicals_locked", Label: "Chemicals are labeled and locked away from food", Evidence: models.EvidenceObservation},
			{Key: "surfaces_sanitized", Label: "Prep surfaces are cleaned and sanitized", Evidence: models.EvidenceObservation},
			{Key: "menus_posted", Label: "Menus are posted and substitutions documented", Evidence: models.EvidenceDocument},
			{Key: "laundry_separated", Label: "Soiled and clean laundry are separated", Evidence: models.EvidenceObservation},
		},
	},
	{
		Key:         "sleep_nap",
		Name:        "Sleep / Nap",
		Description: "Safe sleep compliance and rest equipment",
		Tier:        1,
		Items: []Item{
			{Key: "safe_sleep_followed", Label: "Infant safe sleep practices are followed", Evidence: models.EvidenceObservation},
			{Key: "cribs_compliant", Label: "Cribs meet current safety standards", Evidence: models.EvidenceObservation},
			{Key: "cots_labeled_clean", Label: "Cots and bedding are labeled and cleaned on schedule", Evidence: models.EvidenceObservation},
		},
	},
	{
		Key:         "maintenance",
		Name:        "Building / Maintenance",
		Description: "Facility condition, safety equipment and hazards",
		Tier:        1,
		Items: []Item{
			{Key: "extinguishers_tagged", Label: "Fire extinguishers are charged and tagged", Evidence: models.EvidencePhoto},
			{Key: "exits_clear", Label: "Emergency exits are marked and unobstructed", Evidence: models.EvidencePhoto},
			{Key: "drills_documented", Label: "Fire and severe weather drills are documented", Evidence: models.EvidenceDocument},
			{Key: "restrooms_stocked", Label: "Restrooms are clean, stocked and child accessible", Evidence: models.EvidenceObservation},
			{Key: "hvac_functioning", Label: "Heating and cooling maintain a comfortable temperature", Evidence: models.EvidenceObservation},
			{Key: "repairs_logged", Label: "Outstanding repairs are logged with work orders", Evidence: models.EvidenceDocument},
		},
	},
	{
		Key:         "vehicles",
		Name:        "Vehicles",
		Description: "Buses and vans used for transport",
		Tier:        1,
		Items: []Item{
			{Key: "inspection_current", Label: "Vehicle inspection and registration are current", Evidence: models.EvidenceDocument},
			{Key: "child_check_system", Label: "Child check-off system is in use", Evidence: models.EvidenceDocument},
			{Key: "first_aid_onboard", Label: "First aid kit and emergency forms are on board", Evidence: models.EvidenceObservation},
			{Key: "interior_clean", Label: "Interior is clean with seat restraints intact", Evidence: models.EvidencePhoto},
		},
	},
}

var tier2Sections = []Section{
	{
		Key:         "cqi_leadership",
		Name:        "CQI: Leadership & Staffing",
		Description: "Continuous quality improvement in leadership practice",
		Tier:        2,
		Items: []Item{
			{Key: "coaching_cycles", Label: "Director runs documented coaching cycles with staff", Evidence: models.EvidenceDocument},
			{Key: "turnover_plan", Label: "Staffing and retention plan is current", Evidence: models.EvidenceDocument},
			{Key: "pd_hours_tracked", Label: "Professional development hours are tracked per teacher", Evidence: models.EvidenceDocument},
		},
	},
	{
		Key:         "cqi_family_engagement",
		Name:        "CQI: Family Engagement",
		Description: "Family communication and feedback loops",
		Tier:        2,
		Items: []Item{
			{Key: "family_survey_actioned", Label: "Latest family survey results have action items", Evidence: models.EvidenceDocument},
			{Key: "conferences_scheduled", Label: "Parent-teacher conferences are scheduled twice yearly", Evidence: models.EvidenceDocument},
			{Key: "daily_reports_sent", Label: "Daily reports are sent for infant and toddler rooms", Evidence: models.EvidenceInterview},
		},
	},
	{
		Key:         "cqi_curriculum",
		Name:        "CQI: Curriculum Quality",
		Description: "Curriculum fidelity and child assessment",
		Tier:        2,
		Items: []Item{
			{Key: "assessments_current", Label: "Child assessments are current for every classroom", Evidence: models.EvidenceDocument},
			{Key: "lesson_plans_aligned", Label: "Lesson plans align with the published curriculum", Evidence: models.EvidenceDocument},
			{Key: "observation_feedback", Label: "Classroom observations produce written teacher feedback", Evidence: models.EvidenceDocument},
		},
	},
}

var catalogCache = gocache.New(gocache.NoExpiration, 10*time.Minute)

// ChecklistForType returns the catalog for a report type. Unknown types fall
// back to the Tier 1 checklist.
func ChecklistForType(reportType models.ReportType) Checklist {
	switch reportType {
	case models.ReportTypeTier1Tier2:
		return combinedChecklist()
	case models.ReportTypeTier1, models.ReportTypeNewAcquisition:
		return tier1Checklist()
	default:
		return tier1Checklist()
	}
}

func tier1Checklist() Checklist {
	return Checklist{
		Name:        "Tier 1 QA & Compliance Checklist",
		Description: "Standard quality-assurance inspection",
		Sections:    tier1Sections,
	}
}

func combinedChecklist() Checklist {
	if cached, ok := catalogCache.Get("combined"); ok {
		return cached.(Checklist)
	}
	combined := Checklist{
		Name:        "Tier 1 + Tier 2 QA & Compliance Checklist",
		Description: "Full QA inspection with Continuous Quality Improvement add-on",
		Sections:    make([]Section, 0, len(tier1Sections)+len(tier2Sections)),
	}
	combined.Sections = append(combined.Sections, tier1Sections...)
	combined.Sections = append(combined.Sections, tier2Sections...)
	catalogCache.Set("combined", combined, gocache.NoExpiration)
	return combined
}

// SectionsList returns section metadata without items, for navigation.
func SectionsList(reportType models.ReportType) []Section {
	checklist := ChecklistForType(reportType)
	sections := make([]Section, 0, len(checklist.Sections))
	for _, s := range checklist.Sections {
		sections = append(sections, Section{
			Key:         s.Key,
			Name:        s.Name,
			Description: s.Description,
			Tier:        s.Tier,
		})
	}
	return sections
}

// AllItemsFlat flattens the catalog into (section, item) rows in catalog
// order.
func AllItemsFlat(reportType models.ReportType) []FlatItem {
	checklist := ChecklistForType(reportType)
	var items []FlatItem
	for _, section := range checklist.Sections {
		for _, item := range section.Items {
			items = append(items, FlatItem{
				SectionKey:  section.Key,
				SectionName: section.Name,
				ItemKey:     item.Key,
				ItemLabel:   item.Label,
				Evidence:    item.Evidence,
				Tier:        section.Tier,
			})
		}
	}
	return items
}

func CountItems(reportType models.ReportType) int {
	count := 0
	for _, section := range ChecklistForType(reportType).Sections {
		count += len(section.Items)
	}
	return count
}

// FindSection returns the section with the given key, or nil.
func FindSection(reportType models.ReportType, sectionKey string) *Section {
	checklist := ChecklistForType(reportType)
	for i := range checklist.Sections {
		if checklist.Sections[i].Key == sectionKey {
			return &checklist.Sections[i]
		}
	}
	return nil
}

// FindItem returns the item with the given keys, or nil.
func FindItem(reportType models.ReportType, sectionKey, itemKey string) *Item {
	section := FindSection(reportType, sectionKey)
	if section == nil {
		return nil
	}
	for i := range section.Items {
		if section.Items[i].Key == itemKey {
			return &section.Items[i]
		}
	}
	return nil
}

// ProgressStats summarizes how much of a report's checklist has been rated.
type ProgressStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
	Yes        int `json:"yes"`
	Sometimes  int `json:"sometimes"`
	No         int `json:"no"`
}

// GetProgressStats counts rated responses against the catalog size. Items
// rated na are treated as unanswered for completion purposes.
func GetProgressStats(db *gorm.DB, reportID int, reportType models.ReportType) (*ProgressStats, error) {
	responses, err := models.GetResponsesByReport(db, reportID)
	if err != nil {
		return nil, err
	}

	stats := ProgressStats{Total: CountItems(reportType)}
	for _, r := range responses {
		switch r.Rating {
		case models.ResponseYes:
			stats.Completed++
			stats.Yes++
		case models.ResponseSometimes:
			stats.Completed++
			stats.Sometimes++
		case models.ResponseNo:
			stats.Completed++
			stats.No++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = int(float64(stats.Completed)/float64(stats.Total)*100 + 0.5)
	}
	return &stats, nil
}
