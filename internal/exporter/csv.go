package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/repository"
)

// Форматы выгрузки
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Header - колонки выгрузки. Базовые колонки совпадают с каноническими именами схемы.
var Header = []string{
	repository.ColSourceID,
	repository.ColIncidentDate,
	repository.ColRegionCode,
	"region_name",
	repository.ColCity,
	repository.ColLatitude,
	repository.ColLongitude,
	repository.ColSchoolName,
	repository.ColNumberKilled,
	repository.ColNumberWounded,
	repository.ColIntent,
	repository.ColOutcome,
	repository.ColNarrative,
	"year",
	"month_abbrev",
	"month_number",
	"day_of_week_abbrev",
	"day_of_week_number",
	"quarter",
	"academic_year",
	"days_since_incident",
	"total_casualties",
	"is_fatal",
	"is_mass_casualty",
	"severity_category",
	"days_since_previous_in_region",
}

// Row переводит инцидент в строку выгрузки; отсутствующие значения - пустые строки
func Row(inc *models.Incident) []string {
	return []string{
		inc.SourceID,
		formatDate(inc.IncidentDate),
		inc.RegionCode,
		optString(inc.RegionName),
		inc.City,
		formatFloat(inc.Latitude),
		formatFloat(inc.Longitude),
		inc.SchoolName,
		strconv.Itoa(inc.NumberKilled),
		strconv.Itoa(inc.NumberWounded),
		inc.Intent,
		inc.Outcome,
		optString(inc.Narrative),
		optInt(inc.Year),
		optString(inc.MonthAbbrev),
		optInt(inc.MonthNumber),
		optString(inc.DayOfWeekAbbrev),
		optInt(inc.DayOfWeekNumber),
		optInt(inc.Quarter),
		optString(inc.AcademicYear),
		optInt(inc.DaysSinceIncident),
		strconv.Itoa(inc.TotalCasualties),
		strconv.FormatBool(inc.IsFatal),
		strconv.FormatBool(inc.IsMassCasualty),
		string(inc.Severity),
		optInt(inc.DaysSincePreviousInRegion),
	}
}

// WriteCSV пишет таблицу в CSV со стандартным экранированием
func WriteCSV(w io.Writer, incidents []models.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("exporter: could not write csv header: %w", err)
	}
	for i := range incidents {
		if err := cw.Write(Row(&incidents[i])); err != nil {
			return fmt.Errorf("exporter: could not write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("exporter: could not flush csv: %w", err)
	}
	return nil
}

// FileName возвращает имя файла выгрузки вида school_incidents_YYYYMMDD_HHMMSS.csv
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("school_incidents_%s.%s", now.Format("20060102_150405"), format)
}

// ContentType возвращает MIME-тип формата
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write пишет таблицу в выбранном формате
func Write(w io.Writer, format string, incidents []models.Incident) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, incidents)
	case FormatXLSX:
		return WriteXLSX(w, incidents)
	default:
		return fmt.Errorf("exporter: unsupported format %q", format)
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
