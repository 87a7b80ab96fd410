package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
)

// IncidentFilterQuery DTO параметров фильтрации.
// Множественные значения передаются повтором параметра или через запятую.
// @Description DTO параметров фильтрации
type IncidentFilterQuery struct {
	Preset        string   `form:"preset" validate:"omitempty,oneof=all last_year_complete last_5_years fatal_only mass_casualties current_year"`
	Regions       []string `form:"region" validate:"omitempty,dive,max=64"`
	Intents       []string `form:"intent" validate:"omitempty,dive,max=128"`
	Outcomes      []string `form:"outcome" validate:"omitempty,dive,max=128"`
	DateFrom      string   `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo        string   `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
	MinCasualties *int     `form:"min_casualties" validate:"omitempty,min=0"`
	MinSeverity   string   `form:"min_severity" validate:"omitempty,max=32"`
	Years         []int    `form:"year" validate:"omitempty,dive,min=1900,max=2200"`
	Months        []string `form:"month" validate:"omitempty,dive,max=16"`
	FatalOnly     bool     `form:"fatal_only"`
	TopRegions    int      `form:"top_regions" validate:"omitempty,min=1,max=60"`
}

// RollingQuery DTO параметров скользящей статистики
// @Description DTO параметров скользящей статистики
type RollingQuery struct {
	WindowDays int `form:"window_days" validate:"omitempty,min=1,max=3650"`
}

// ExportQuery DTO параметров выгрузки
// @Description DTO параметров выгрузки
type ExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv xlsx"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	SourceID                  string   `json:"source_id,omitempty"`
	IncidentDate              *string  `json:"incident_date"`
	RegionCode                string   `json:"region_code"`
	RegionName                *string  `json:"region_name"`
	City                      string   `json:"city"`
	Latitude                  *float64 `json:"latitude"`
	Longitude                 *float64 `json:"longitude"`
	SchoolName                string   `json:"school_name"`
	NumberKilled              int      `json:"number_killed"`
	NumberWounded             int      `json:"number_wounded"`
	Intent                    string   `json:"intent"`
	Outcome                   string   `json:"outcome"`
	Narrative                 *string  `json:"narrative"`
	Year                      *int     `json:"year"`
	MonthAbbrev               *string  `json:"month_abbrev"`
	DayOfWeekAbbrev           *string  `json:"day_of_week_abbrev"`
	MonthNumber               *int     `json:"month_number"`
	DayOfWeekNumber           *int     `json:"day_of_week_number"`
	Quarter                   *int     `json:"quarter"`
	AcademicYear              *string  `json:"academic_year"`
	DaysSinceIncident         *int     `json:"days_since_incident"`
	TotalCasualties           int      `json:"total_casualties"`
	IsFatal                   bool     `json:"is_fatal"`
	IsMassCasualty            bool     `json:"is_mass_casualty"`
	SeverityCategory          string   `json:"severity_category"`
	DaysSincePreviousInRegion *int     `json:"days_since_previous_in_region"`
}

// IncidentListResponse DTO для списка инцидентов
// @Description DTO для списка инцидентов
type IncidentListResponse struct {
	LoadID    uuid.UUID             `json:"load_id"`
	LoadedAt  time.Time             `json:"loaded_at"`
	Filter    service.FilterSummary `json:"filter"`
	Incidents []*IncidentResponse   `json:"incidents"`
}

// RollingResponse DTO для скользящей статистики
// @Description DTO для скользящей статистики
type RollingResponse struct {
	WindowDays int                    `json:"window_days"`
	Points     []service.RollingPoint `json:"points"`
}

// QualityResponse DTO для метрик качества
// @Description DTO для метрик качества
type QualityResponse struct {
	LoadID         uuid.UUID             `json:"load_id"`
	LoadedAt       time.Time             `json:"loaded_at"`
	Metrics        models.QualityMetrics `json:"metrics"`
	Level          string                `json:"level"`
	LatestIncident *IncidentResponse     `json:"latest_incident"`
}
