package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestIncidentService(t *testing.T) (IncidentService, *mocks.MockDatasetProvider) {
	ctrl := gomock.NewController(t)
	providerMock := mocks.NewMockDatasetProvider(ctrl)
	return NewIncidentService(providerMock, newTestLogger(), fixedClock(testNow)), providerMock
}

func fixtureDataset() *models.Dataset {
	return &models.Dataset{
		LoadID:    uuid.New(),
		LoadedAt:  testNow,
		Incidents: enrichedFixture(testNow),
		Quality:   models.QualityMetrics{InitialRows: 9, FinalRows: 8, CompletenessScore: 79.2},
	}
}

func TestListIncidents(t *testing.T) {
	svc, providerMock := newTestIncidentService(t)
	ctx := context.Background()
	dataset := fixtureDataset()

	providerMock.EXPECT().Dataset(ctx).Return(dataset, nil).Times(1)

	view, err := svc.ListIncidents(ctx, models.FilterCriteria{Regions: []string{"CA"}})

	require.NoError(t, err)
	assert.Equal(t, dataset.LoadID, view.LoadID)
	assert.Len(t, view.Incidents, 3)
	assert.Equal(t, 3, view.Filter.Shown)
	assert.Equal(t, 8, view.Filter.Original)
}

func TestListIncidents_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		criteria    models.FilterCriteria
		mockSetup   func(m *mocks.MockDatasetProvider)
		expectedErr error
	}{
		{
			name: "Inverted date range",
			criteria: models.FilterCriteria{DateRange: &models.DateRange{
				From: day(2022, time.January, 1),
				To:   day(2021, time.January, 1),
			}},
			mockSetup:   func(m *mocks.MockDatasetProvider) {},
			expectedErr: ErrInvalidFilter,
		},
		{
			name:        "Negative min casualties",
			criteria:    models.FilterCriteria{MinCasualties: ptr(-1)},
			mockSetup:   func(m *mocks.MockDatasetProvider) {},
			expectedErr: ErrInvalidFilter,
		},
		{
			name:     "Dataset unavailable",
			criteria: models.FilterCriteria{},
			mockSetup: func(m *mocks.MockDatasetProvider) {
				m.EXPECT().Dataset(gomock.Any()).Return(nil, &models.DataFetchError{URL: "u", StatusCode: 500})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, providerMock := newTestIncidentService(t)
			tc.mockSetup(providerMock)

			view, err := svc.ListIncidents(context.Background(), tc.criteria)

			require.Error(t, err)
			assert.Nil(t, view)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				var fetchErr *models.DataFetchError
				assert.True(t, errors.As(err, &fetchErr))
			}
		})
	}
}

func TestGetSummary(t *testing.T) {
	svc, providerMock := newTestIncidentService(t)
	providerMock.EXPECT().Dataset(gomock.Any()).Return(fixtureDataset(), nil)

	summary, err := svc.GetSummary(context.Background(), models.FilterCriteria{FatalOnly: true})

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Summary.TotalIncidents)
	assert.Equal(t, 100.0, summary.Summary.FatalRate)
	assert.Equal(t, "Texas", summary.Summary.TopRegion)
}

func TestGetRollingStatistics(t *testing.T) {
	svc, providerMock := newTestIncidentService(t)
	providerMock.EXPECT().Dataset(gomock.Any()).Return(fixtureDataset(), nil)

	points, err := svc.GetRollingStatistics(context.Background(), models.FilterCriteria{Regions: []string{"CA"}}, 30)

	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.Equal(t, *day(2019, time.March, 4), points[0].Date)
	assert.Equal(t, *day(2020, time.June, 10), points[len(points)-1].Date)
}

func TestGetRollingStatistics_WindowTooLarge(t *testing.T) {
	svc, _ := newTestIncidentService(t)

	points, err := svc.GetRollingStatistics(context.Background(), models.FilterCriteria{}, MaxRollingWindowDays+1)

	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Nil(t, points)
}

func TestGetFilterOptions(t *testing.T) {
	svc, providerMock := newTestIncidentService(t)
	providerMock.EXPECT().Dataset(gomock.Any()).Return(fixtureDataset(), nil)

	opts, err := svc.GetFilterOptions(context.Background())

	require.NoError(t, err)
	assert.Len(t, opts.Regions, 4)
	assert.Equal(t, 2022, opts.Years[0])
}

func TestGetQuality(t *testing.T) {
	svc, providerMock := newTestIncidentService(t)
	dataset := fixtureDataset()
	providerMock.EXPECT().Dataset(gomock.Any()).Return(dataset, nil)

	report, err := svc.GetQuality(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dataset.LoadID, report.LoadID)
	assert.Equal(t, "Good", report.Level)
	assert.Equal(t, 1, report.Metrics.InitialRows-report.Metrics.FinalRows)
	require.NotNil(t, report.LatestIncident)
	assert.Equal(t, "Eastside High", report.LatestIncident.SchoolName)
}

func TestRefreshDataset(t *testing.T) {
	svc, providerMock := newTestIncidentService(t)

	dataset := fixtureDataset()
	providerMock.EXPECT().Refresh(gomock.Any()).Return(dataset, nil)

	report, err := svc.RefreshDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataset.LoadID, report.LoadID)

	parseErr := &models.DataParseError{Reason: "missing required column"}
	providerMock.EXPECT().Refresh(gomock.Any()).Return(nil, parseErr)

	report, err = svc.RefreshDataset(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, parseErr)
}

func TestValidateCriteria(t *testing.T) {
	assert.NoError(t, ValidateCriteria(models.FilterCriteria{}))
	assert.NoError(t, ValidateCriteria(models.FilterCriteria{
		DateRange: &models.DateRange{From: day(2020, time.January, 1), To: day(2020, time.January, 1)},
	}))
	assert.ErrorIs(t, ValidateCriteria(models.FilterCriteria{TopRegions: -1}), ErrInvalidFilter)
}
