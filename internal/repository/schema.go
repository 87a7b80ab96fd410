package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

// Канонические имена колонок. Совпадают с заголовком выгрузки, поэтому выгруженный CSV читается обратно.
const (
	ColSourceID      = "source_id"
	ColIncidentDate  = "incident_date"
	ColRegionCode    = "region_code"
	ColCity          = "city"
	ColLatitude      = "latitude"
	ColLongitude     = "longitude"
	ColSchoolName    = "school_name"
	ColNumberKilled  = "number_killed"
	ColNumberWounded = "number_wounded"
	ColIntent        = "intent"
	ColOutcome       = "outcome"
	ColNarrative     = "narrative"
)

// Column описывает колонку источника: каноническое имя, допустимые заголовки и обязательность
type Column struct {
	Name     string
	Aliases  []string
	Required bool
}

// Schema нормализует заголовок CSV: находит известные колонки, молча пропускает
// служебные (Dropped) и незнакомые, сообщает об отсутствии обязательных.
type Schema struct {
	Columns []Column
	Dropped []string
}

// DefaultSchema - схема CSV Everytown Research
func DefaultSchema() Schema {
	return Schema{
		Columns: []Column{
			{Name: ColSourceID, Aliases: []string{"ID"}},
			{Name: ColIncidentDate, Aliases: []string{"Incident Date"}, Required: true},
			{Name: ColRegionCode, Aliases: []string{"State"}, Required: true},
			{Name: ColCity, Aliases: []string{"City"}, Required: true},
			{Name: ColLatitude, Aliases: []string{"Latitude"}, Required: true},
			{Name: ColLongitude, Aliases: []string{"Longitude"}, Required: true},
			{Name: ColSchoolName, Aliases: []string{"School name"}, Required: true},
			{Name: ColNumberKilled, Aliases: []string{"Number Killed"}, Required: true},
			{Name: ColNumberWounded, Aliases: []string{"Number Wounded"}, Required: true},
			{Name: ColIntent, Aliases: []string{"Intent"}},
			{Name: ColOutcome, Aliases: []string{"Outcome"}},
			{Name: ColNarrative, Aliases: []string{"Narrative"}},
		},
		Dropped: []string{"Source 2", "URL 2", "Source 3", "URL 3", "School Type", "Created", "Last Modified"},
	}
}

// ColumnIndex - результат нормализации заголовка
type ColumnIndex struct {
	positions      map[string]int
	DroppedPresent []string
}

// Get возвращает значение колонки из записи или пустую строку, если колонки нет
func (ci *ColumnIndex) Get(record []string, name string) string {
	pos, ok := ci.positions[name]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// Has сообщает, присутствует ли колонка в заголовке
func (ci *ColumnIndex) Has(name string) bool {
	_, ok := ci.positions[name]
	return ok
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(h, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// Normalize сопоставляет заголовок со схемой
func (s Schema) Normalize(header []string) (*ColumnIndex, error) {
	lookup := make(map[string]string)
	for _, col := range s.Columns {
		lookup[normalizeHeader(col.Name)] = col.Name
		for _, alias := range col.Aliases {
			lookup[normalizeHeader(alias)] = col.Name
		}
	}
	dropped := make(map[string]struct{}, len(s.Dropped))
	for _, d := range s.Dropped {
		dropped[normalizeHeader(d)] = struct{}{}
	}

	idx := &ColumnIndex{positions: make(map[string]int)}
	for pos, raw := range header {
		key := normalizeHeader(raw)
		if _, ok := dropped[key]; ok {
			idx.DroppedPresent = append(idx.DroppedPresent, strings.TrimSpace(raw))
			continue
		}
		name, ok := lookup[key]
		if !ok {
			continue
		}
		// первая колонка с таким именем выигрывает
		if _, seen := idx.positions[name]; !seen {
			idx.positions[name] = pos
		}
	}

	var missing []string
	for _, col := range s.Columns {
		if col.Required && !idx.Has(col.Name) {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &models.DataParseError{Reason: "required columns not found", MissingColumns: missing}
	}
	return idx, nil
}

// Read разбирает CSV в сырую таблицу. Ошибки отдельных полей не фатальны:
// нераспознанные даты и координаты становятся nil, счетчики пострадавших - нулем.
func (s Schema) Read(r io.Reader) (*models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &models.DataParseError{Reason: "empty input"}
		}
		return nil, &models.DataParseError{Reason: "failed to read header", Err: err}
	}

	idx, err := s.Normalize(header)
	if err != nil {
		return nil, err
	}

	table := &models.RawTable{
		Incidents:      make([]models.Incident, 0, 1024),
		DroppedColumns: idx.DroppedPresent,
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &models.DataParseError{Reason: fmt.Sprintf("malformed record at line %d", line), Err: err}
		}

		killed, okKilled := parseCount(idx.Get(record, ColNumberKilled))
		wounded, okWounded := parseCount(idx.Get(record, ColNumberWounded))
		if !okKilled {
			table.InvalidCasualtyCounts++
		}
		if !okWounded {
			table.InvalidCasualtyCounts++
		}

		table.Incidents = append(table.Incidents, models.Incident{
			SourceID:      idx.Get(record, ColSourceID),
			IncidentDate:  ParseDate(idx.Get(record, ColIncidentDate)),
			RegionCode:    strings.ToUpper(idx.Get(record, ColRegionCode)),
			City:          idx.Get(record, ColCity),
			Latitude:      parseCoordinate(idx.Get(record, ColLatitude)),
			Longitude:     parseCoordinate(idx.Get(record, ColLongitude)),
			SchoolName:    idx.Get(record, ColSchoolName),
			NumberKilled:  killed,
			NumberWounded: wounded,
			Intent:        idx.Get(record, ColIntent),
			Outcome:       idx.Get(record, ColOutcome),
			Narrative:     optionalText(idx.Get(record, ColNarrative)),
		})
	}
	return table, nil
}

// ReadIncidents разбирает CSV по схеме по умолчанию
func ReadIncidents(r io.Reader) (*models.RawTable, error) {
	return DefaultSchema().Read(r)
}

var dateLayouts = []string{
	models.DateLayout,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate распознает дату в одном из форматов источника и обрезает время.
// Пустое или нераспознанное значение дает nil.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

func parseCoordinate(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// maxCount - верхняя граница числа пострадавших; сумма двух значений помещается в int32
const maxCount = math.MaxInt32 / 2

// parseCount разбирает неотрицательное целое не больше maxCount; допускает "3.0" из выгрузок таблиц
func parseCount(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n < 0 || n > maxCount {
			return 0, false
		}
		return int(n), true
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > maxCount || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func optionalText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
