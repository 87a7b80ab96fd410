package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident - одна запись о стрельбе на территории школы.
// Поля-указатели равны nil, если исходное значение отсутствует или не распознано.
type Incident struct {
	SourceID      string     `json:"source_id,omitempty"`
	IncidentDate  *time.Time `json:"incident_date"`
	RegionCode    string     `json:"region_code"`
	RegionName    *string    `json:"region_name"`
	City          string     `json:"city"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	SchoolName    string     `json:"school_name"`
	NumberKilled  int        `json:"number_killed"`
	NumberWounded int        `json:"number_wounded"`
	Intent        string     `json:"intent"`
	Outcome       string     `json:"outcome"`
	Narrative     *string    `json:"narrative"`

	// Производные поля, заполняются Enricher'ом
	Year                      *int             `json:"year"`
	MonthAbbrev               *string          `json:"month_abbrev"`
	DayOfWeekAbbrev           *string          `json:"day_of_week_abbrev"`
	MonthNumber               *int             `json:"month_number"`
	DayOfWeekNumber           *int             `json:"day_of_week_number"`
	Quarter                   *int             `json:"quarter"`
	AcademicYear              *string          `json:"academic_year"`
	DaysSinceIncident         *int             `json:"days_since_incident"`
	TotalCasualties           int              `json:"total_casualties"`
	IsFatal                   bool             `json:"is_fatal"`
	IsMassCasualty            bool             `json:"is_mass_casualty"`
	Severity                  SeverityCategory `json:"severity_category"`
	DaysSincePreviousInRegion *int             `json:"days_since_previous_in_region"`
}

// HasCoordinates сообщает, пригодна ли запись для отображения на карте
func (i *Incident) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// DedupKey возвращает составной ключ (дата, город, регион, школа), по которому удаляются дубликаты
func (i *Incident) DedupKey() string {
	date := ""
	if i.IncidentDate != nil {
		date = i.IncidentDate.Format(DateLayout)
	}
	return date + "\x1f" + i.City + "\x1f" + i.RegionCode + "\x1f" + i.SchoolName
}

// DateLayout - формат даты инцидента при сериализации
const DateLayout = "2006-01-02"

// Dataset - результат одного цикла загрузки: обогащенная таблица и метрики качества
type Dataset struct {
	LoadID    uuid.UUID      `json:"load_id"`
	LoadedAt  time.Time      `json:"loaded_at"`
	Incidents []Incident     `json:"incidents"`
	Quality   QualityMetrics `json:"quality"`
}

// LatestIncident возвращает самый поздний по дате инцидент или nil
func (d *Dataset) LatestIncident() *Incident {
	var latest *Incident
	for idx := range d.Incidents {
		inc := &d.Incidents[idx]
		if inc.IncidentDate == nil {
			continue
		}
		if latest == nil || inc.IncidentDate.After(*latest.IncidentDate) {
			latest = inc
		}
	}
	return latest
}

// RawTable - разобранный, но еще не очищенный и не обогащенный CSV
type RawTable struct {
	Incidents []Incident
	// InvalidCasualtyCounts - сколько значений убитых/раненых не распознано и заменено нулем
	InvalidCasualtyCounts int
	// DroppedColumns - служебные колонки, найденные в источнике и отброшенные
	DroppedColumns []string
}
