package service

import (
	"testing"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestEnricher() *Enricher {
	return NewEnricher(models.NewClassifier(models.DefaultMassCasualtyThreshold))
}

func TestEnrich_Scenario(t *testing.T) {
	rows := []models.Incident{
		{IncidentDate: day(2020, time.January, 5), RegionCode: "CA"},
		{IncidentDate: day(2020, time.June, 10), RegionCode: "CA", NumberKilled: 1},
		{RegionCode: "TX", NumberWounded: 3},
	}

	out := newTestEnricher().Enrich(rows, testNow)

	require.Len(t, out, 3)
	assert.Equal(t, models.SeverityNoCasualties, out[0].Severity)
	assert.Nil(t, out[0].DaysSincePreviousInRegion)

	assert.Equal(t, models.SeveritySingleFatality, out[1].Severity)
	require.NotNil(t, out[1].DaysSincePreviousInRegion)
	assert.Equal(t, 157, *out[1].DaysSincePreviousInRegion)

	assert.Equal(t, models.SeverityInjuriesOnly, out[2].Severity)
	assert.Nil(t, out[2].Year)
	assert.Nil(t, out[2].MonthAbbrev)
	assert.Nil(t, out[2].DayOfWeekNumber)
	assert.Nil(t, out[2].Quarter)
	assert.Nil(t, out[2].AcademicYear)
	assert.Nil(t, out[2].DaysSinceIncident)
	assert.Nil(t, out[2].DaysSincePreviousInRegion)
}

func TestEnrich_TemporalFields(t *testing.T) {
	out := newTestEnricher().Enrich([]models.Incident{
		{IncidentDate: day(2020, time.January, 5), RegionCode: "CA"},
		{IncidentDate: day(2020, time.September, 16), RegionCode: "ny"},
	}, testNow)

	sunday := out[0]
	assert.Equal(t, 2020, *sunday.Year)
	assert.Equal(t, "Jan", *sunday.MonthAbbrev)
	assert.Equal(t, 1, *sunday.MonthNumber)
	assert.Equal(t, "Sun", *sunday.DayOfWeekAbbrev)
	assert.Equal(t, 6, *sunday.DayOfWeekNumber, "Monday is 0")
	assert.Equal(t, 1, *sunday.Quarter)
	assert.Equal(t, "2019-2020", *sunday.AcademicYear)
	assert.Equal(t, 1517, *sunday.DaysSinceIncident)
	require.NotNil(t, sunday.RegionName)
	assert.Equal(t, "California", *sunday.RegionName)

	wednesday := out[1]
	assert.Equal(t, 2, *wednesday.DayOfWeekNumber)
	assert.Equal(t, 3, *wednesday.Quarter)
	assert.Equal(t, "2020-2021", *wednesday.AcademicYear)
	require.NotNil(t, wednesday.RegionName, "region codes are matched case-insensitively")
	assert.Equal(t, "New York", *wednesday.RegionName)
}

func TestEnrich_CasualtyInvariants(t *testing.T) {
	rows := []models.Incident{
		{NumberKilled: 0, NumberWounded: 0},
		{NumberKilled: 0, NumberWounded: 4},
		{NumberKilled: 1, NumberWounded: 0},
		{NumberKilled: 2, NumberWounded: 1},
		{NumberKilled: 1, NumberWounded: 3},
	}

	out := newTestEnricher().Enrich(rows, testNow)

	expected := []models.SeverityCategory{
		models.SeverityNoCasualties,
		models.SeverityInjuriesOnly,
		models.SeveritySingleFatality,
		models.SeverityMultipleCasualties,
		models.SeverityMassCasualty,
	}
	for i, inc := range out {
		assert.Equal(t, inc.NumberKilled+inc.NumberWounded, inc.TotalCasualties)
		assert.Equal(t, inc.NumberKilled > 0, inc.IsFatal)
		assert.Equal(t, inc.TotalCasualties >= 4, inc.IsMassCasualty)
		assert.Equal(t, expected[i], inc.Severity, "row %d", i)
	}
}

func TestEnrich_Idempotent(t *testing.T) {
	enricher := newTestEnricher()
	rows := []models.Incident{
		{IncidentDate: day(2021, time.March, 1), RegionCode: "TX", NumberKilled: 1, NumberWounded: 4},
		{IncidentDate: day(2020, time.March, 1), RegionCode: "TX"},
		{RegionCode: "TX"},
	}

	once := enricher.Enrich(rows, testNow)
	twice := enricher.Enrich(once, testNow)

	assert.Equal(t, once, twice)
	assert.Nil(t, rows[0].Year, "input must not be modified")
}

func TestEnrich_RegionGapsIgnoreInputOrder(t *testing.T) {
	out := newTestEnricher().Enrich([]models.Incident{
		{IncidentDate: day(2021, time.January, 11), RegionCode: "OH"},
		{IncidentDate: day(2021, time.January, 1), RegionCode: "OH"},
		{IncidentDate: day(2021, time.January, 4), RegionCode: "PA"},
	}, testNow)

	require.NotNil(t, out[0].DaysSincePreviousInRegion)
	assert.Equal(t, 10, *out[0].DaysSincePreviousInRegion)
	assert.Nil(t, out[1].DaysSincePreviousInRegion)
	assert.Nil(t, out[2].DaysSincePreviousInRegion)
}

func TestAcademicYear(t *testing.T) {
	assert.Equal(t, "2019-2020", AcademicYear(2020, 7))
	assert.Equal(t, "2020-2021", AcademicYear(2020, 8))
}
