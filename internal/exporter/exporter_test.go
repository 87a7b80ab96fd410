package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr[T any](v T) *T {
	return &v
}

func testIncidents() []models.Incident {
	date := time.Date(2020, time.June, 10, 0, 0, 0, 0, time.UTC)
	return []models.Incident{
		{
			SourceID:                  "42",
			IncidentDate:              &date,
			RegionCode:                "CA",
			RegionName:                ptr("California"),
			City:                      "San Diego",
			Latitude:                  ptr(32.71),
			Longitude:                 ptr(-117.16),
			SchoolName:                "Hoover High",
			NumberKilled:              1,
			NumberWounded:             0,
			Intent:                    "Dispute",
			Outcome:                   "Arrested",
			Narrative:                 ptr("Argument escalated, \"shots\" fired"),
			Year:                      ptr(2020),
			MonthAbbrev:               ptr("Jun"),
			MonthNumber:               ptr(6),
			DayOfWeekAbbrev:           ptr("Wed"),
			DayOfWeekNumber:           ptr(2),
			Quarter:                   ptr(2),
			AcademicYear:              ptr("2019-2020"),
			DaysSinceIncident:         ptr(10),
			TotalCasualties:           1,
			IsFatal:                   true,
			Severity:                  models.SeveritySingleFatality,
			DaysSincePreviousInRegion: ptr(157),
		},
		{
			RegionCode:    "TX",
			City:          "Austin",
			SchoolName:    "Travis Elementary",
			NumberWounded: 3,
			Severity:      models.SeverityInjuriesOnly,
		},
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testIncidents()))

	table, err := repository.ReadIncidents(bytes.NewReader(buf.Bytes()))

	require.NoError(t, err)
	require.Len(t, table.Incidents, 2)
	first := table.Incidents[0]
	assert.Equal(t, "42", first.SourceID)
	assert.Equal(t, "Hoover High", first.SchoolName)
	require.NotNil(t, first.IncidentDate)
	assert.Equal(t, time.Date(2020, time.June, 10, 0, 0, 0, 0, time.UTC), *first.IncidentDate)
	assert.Equal(t, 32.71, *first.Latitude)
	assert.Equal(t, "Argument escalated, \"shots\" fired", *first.Narrative)

	second := table.Incidents[1]
	assert.Nil(t, second.IncidentDate)
	assert.False(t, second.HasCoordinates())
	assert.Equal(t, 3, second.NumberWounded)
	assert.Equal(t, 0, table.InvalidCasualtyCounts)
}

func TestWriteCSV_DerivedColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testIncidents()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])

	column := func(row []string, name string) string {
		for i, h := range Header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("unknown column %s", name)
		return ""
	}
	assert.Equal(t, "Single Fatality", column(records[1], "severity_category"))
	assert.Equal(t, "true", column(records[1], "is_fatal"))
	assert.Equal(t, "157", column(records[1], "days_since_previous_in_region"))
	assert.Equal(t, "", column(records[2], "year"))
	assert.Equal(t, "", column(records[2], "region_name"))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, testIncidents()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Hoover High", rows[1][7])

	killed, err := f.GetCellValue(SheetName, "I2")
	require.NoError(t, err)
	assert.Equal(t, "1", killed)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "pdf", testIncidents()))
}

func TestFileNameAndContentType(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 5, 7, 0, time.UTC)

	assert.Equal(t, "school_incidents_20240301_090507.csv", FileName(FormatCSV, now))
	assert.Equal(t, "school_incidents_20240301_090507.xlsx", FileName(FormatXLSX, now))
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(FormatCSV))
	assert.Contains(t, ContentType(FormatXLSX), "spreadsheetml")
}
