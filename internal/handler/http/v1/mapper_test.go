package v1

import (
	"testing"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryToCriteria(t *testing.T) {
	criteria, err := QueryToCriteria(IncidentFilterQuery{
		Regions:     []string{"CA, TX", " ", "New York"},
		Intents:     []string{"Dispute"},
		MinSeverity: "Mass Casualty",
		Months:      []string{"January,feb"},
		DateTo:      "2022-12-31",
		TopRegions:  5,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PresetAll, criteria.Preset)
	assert.Equal(t, []string{"CA", "TX", "New York"}, criteria.Regions)
	assert.Equal(t, []string{"Dispute"}, criteria.Intents)
	assert.Nil(t, criteria.Outcomes)
	assert.Equal(t, models.SeverityMassCasualty, criteria.MinSeverity)
	assert.Equal(t, []string{"January", "feb"}, criteria.Months)
	require.NotNil(t, criteria.DateRange)
	assert.Nil(t, criteria.DateRange.From)
	assert.Equal(t, time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC), *criteria.DateRange.To)
	assert.Equal(t, 5, criteria.TopRegions)
}

func TestQueryToCriteria_Errors(t *testing.T) {
	for name, q := range map[string]IncidentFilterQuery{
		"Unknown preset":   {Preset: "weekly"},
		"Unknown severity": {MinSeverity: "extreme"},
		"Unknown month":    {Months: []string{"Jun", "Xyz"}},
		"Bad date":         {DateFrom: "2020-13-01"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := QueryToCriteria(q)
			assert.Error(t, err)
		})
	}
}

func TestModelToIncidentResponse(t *testing.T) {
	d := time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC)
	resp := ModelToIncidentResponse(&models.Incident{
		IncidentDate: &d,
		RegionCode:   "CA",
		Severity:     models.SeverityNoCasualties,
	})

	require.NotNil(t, resp.IncidentDate)
	assert.Equal(t, "2020-01-05", *resp.IncidentDate)
	assert.Equal(t, "No Casualties", resp.SeverityCategory)

	assert.Nil(t, ModelToIncidentResponse(&models.Incident{}).IncidentDate)
}
