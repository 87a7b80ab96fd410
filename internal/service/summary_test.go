package service

import (
	"testing"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Summary(t *testing.T) {
	s := Summarize(enrichedFixture(testNow), testNow).Summary

	assert.Equal(t, 8, s.TotalIncidents)
	assert.Equal(t, 50, s.TotalCasualties)
	assert.Equal(t, 25, s.TotalKilled)
	assert.Equal(t, 25, s.TotalWounded)
	assert.Equal(t, 4, s.RegionsAffected)
	assert.Equal(t, 7, s.CitiesAffected)
	assert.Equal(t, 8, s.SchoolsAffected)
	assert.Equal(t, 6.25, s.AvgCasualtiesPerIncident)
	assert.Equal(t, 25.0, s.NoCasualtyRate)
	assert.Equal(t, 50.0, s.FatalRate)
	assert.Equal(t, 25.0, s.MassCasualtyRate)
	assert.InDelta(t, 57.14, s.WeekdayRate, 0.01)
	assert.InDelta(t, 71.43, s.SchoolYearRate, 0.01)
	assert.Equal(t, 4, s.YearsCovered)
	assert.False(t, s.CurrentYearPartial)
	assert.Equal(t, 1265.0/8, s.AvgDaysBetweenIncidents)
	require.NotNil(t, s.DaysSinceLast)
	assert.Equal(t, 559, *s.DaysSinceLast)
	assert.Equal(t, *day(2019, time.March, 4), *s.DateRangeStart)
	assert.Equal(t, *day(2022, time.August, 20), *s.DateRangeEnd)
	assert.Equal(t, "California", s.TopRegion)
	assert.Equal(t, 3, s.TopRegionCount)
	assert.Equal(t, "Los Angeles, California", s.TopCity)
	assert.Equal(t, 2, s.TopCityCount)
}

func TestSummarize_Categories(t *testing.T) {
	summary := Summarize(enrichedFixture(testNow), testNow)

	temporal := summary.Temporal
	assert.Equal(t, 1.75, temporal.AvgIncidentsPerYear)
	require.NotNil(t, temporal.YearWithMostIncidents)
	assert.Equal(t, 2020, *temporal.YearWithMostIncidents)
	require.NotNil(t, temporal.AvgDaysBetweenIncidents)
	assert.Equal(t, 178.75, *temporal.AvgDaysBetweenIncidents)
	assert.Equal(t, 195.5, *temporal.MedianDaysBetweenIncidents)
	assert.Equal(t, TrendDecreasing, temporal.TrendDirection)

	geo := summary.Geographic
	assert.Equal(t, 4, geo.RegionsAffected)
	assert.InDelta(t, 0.5774, geo.ConcentrationIndex, 0.0001)

	severity := summary.Severity
	assert.Equal(t, 50.0, severity.FatalityRate)
	assert.Equal(t, 6.25, severity.AvgKilledWhenFatal)
	assert.Equal(t, 5.0, severity.AvgWoundedWhenInjuries)

	patterns := summary.Patterns
	assert.Equal(t, "Sat", patterns.MostCommonDay, "Sat and Wed tie, lexical order wins")
	assert.Equal(t, "Aug", patterns.MostCommonMonth)
	assert.Equal(t, "Dispute", patterns.MostCommonIntent)
	assert.Equal(t, 0.75, patterns.WeekendVsWeekdayRatio)
}

func TestSummarize_IncreasingTrend(t *testing.T) {
	var rows []models.Incident
	for year := 2010; year < 2020; year++ {
		for k := 0; k <= year-2010; k++ {
			rows = append(rows, models.Incident{IncidentDate: day(year, time.March, k+1), RegionCode: "CA"})
		}
	}
	enriched := newTestEnricher().Enrich(rows, testNow)

	assert.Equal(t, TrendIncreasing, Summarize(enriched, testNow).Temporal.TrendDirection)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, testNow)

	assert.Equal(t, 0, summary.Summary.TotalIncidents)
	assert.Nil(t, summary.Summary.DaysSinceLast)
	assert.Equal(t, notAvailable, summary.Patterns.MostCommonDay)
	assert.Equal(t, notAvailable, summary.Patterns.MostCommonMonth)
	assert.Equal(t, notAvailable, summary.Patterns.MostCommonIntent)
	assert.Equal(t, TrendDecreasing, summary.Temporal.TrendDirection)
}

func TestSummarize_UndatedOnly(t *testing.T) {
	rows := newTestEnricher().Enrich([]models.Incident{
		{RegionCode: "TX", City: "Austin", NumberWounded: 3},
	}, testNow)

	summary := Summarize(rows, testNow)

	assert.Equal(t, 1, summary.Summary.TotalIncidents)
	assert.Equal(t, 0.0, summary.Summary.WeekdayRate)
	assert.Nil(t, summary.Summary.DateRangeStart)
	assert.Nil(t, summary.Temporal.YearWithMostIncidents)
	assert.Equal(t, 0.0, summary.Geographic.ConcentrationIndex)
	assert.Equal(t, notAvailable, summary.Patterns.MostCommonDay)
}
