package service

import (
	"testing"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingStatistics_Window(t *testing.T) {
	rows := newTestEnricher().Enrich([]models.Incident{
		{IncidentDate: day(2020, time.January, 1), RegionCode: "CA", NumberKilled: 1},
		{IncidentDate: day(2020, time.January, 3), RegionCode: "CA", NumberWounded: 2},
		{RegionCode: "TX", NumberWounded: 7},
	}, testNow)

	points := RollingStatistics(rows, 2)

	require.Len(t, points, 3, "series is continuous from first to last date")
	assert.Equal(t, *day(2020, time.January, 2), points[1].Date)

	assert.Equal(t, 1, points[0].IncidentsRolling)
	assert.Equal(t, 1, points[0].KilledRolling)
	assert.Equal(t, 0, points[1].Incidents)
	assert.Equal(t, 1, points[1].IncidentsRolling)

	assert.Equal(t, 1, points[2].IncidentsRolling, "the first day has left the window")
	assert.Equal(t, 0, points[2].KilledRolling)
	assert.Equal(t, 2, points[2].WoundedRolling)
	assert.Equal(t, 2, points[2].CasualtiesRolling)
}

func TestRollingStatistics_ChangeRate(t *testing.T) {
	rows := newTestEnricher().Enrich([]models.Incident{
		{IncidentDate: day(2020, time.January, 1), RegionCode: "CA"},
		{IncidentDate: day(2020, time.January, 31), RegionCode: "CA"},
	}, testNow)

	points := RollingStatistics(rows, 0)

	require.Len(t, points, 31)
	assert.Equal(t, 0.0, points[29].IncidentsChangeRate)
	assert.Equal(t, 2, points[30].IncidentsRolling)
	assert.Equal(t, 100.0, points[30].IncidentsChangeRate)
}

func TestRollingStatistics_ZeroBase(t *testing.T) {
	rows := newTestEnricher().Enrich([]models.Incident{
		{IncidentDate: day(2020, time.January, 1), RegionCode: "CA"},
		{IncidentDate: day(2020, time.March, 1), RegionCode: "CA"},
	}, testNow)

	points := RollingStatistics(rows, 5)

	last := points[len(points)-1]
	assert.Equal(t, 1, last.IncidentsRolling)
	assert.Equal(t, 0.0, last.IncidentsChangeRate)
}

func TestRollingStatistics_NoDates(t *testing.T) {
	points := RollingStatistics([]models.Incident{{RegionCode: "CA"}}, 30)

	assert.NotNil(t, points)
	assert.Empty(t, points)
}
