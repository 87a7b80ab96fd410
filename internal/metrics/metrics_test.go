package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineMetrics_Counters(t *testing.T) {
	m := NewPipelineMetrics()

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.LoadFailed("fetch")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("failure", "fetch")))
}

func TestPipelineMetrics_LoadSucceeded(t *testing.T) {
	m := NewPipelineMetrics()
	freshness := 12

	m.LoadSucceeded(2*time.Second, models.QualityMetrics{
		FinalRows:         250,
		CompletenessScore: 91.5,
		DataFreshnessDays: &freshness,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("success", "")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.rows))
	assert.Equal(t, 91.5, testutil.ToFloat64(m.completeness))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.freshnessDays))
}

func TestPipelineMetrics_Handler(t *testing.T) {
	m := NewPipelineMetrics()
	m.CacheMiss()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "school_incidents_dataset_cache_requests_total"))
}
