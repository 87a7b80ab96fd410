package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/school_gunfire_dashboard/internal/config"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) (*WebhookWorker, *[]time.Duration) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	var delays []time.Duration
	worker := NewWebhookWorker(nil, logger, cfg)
	worker.sleep = func(_ context.Context, d time.Duration) {
		delays = append(delays, d)
	}
	return worker, &delays
}

func TestDeliver_SignsPayload(t *testing.T) {
	payload := `{"type":"dataset.refreshed"}`
	var signature, contentType, body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature = r.Header.Get(SignatureHeader)
		contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	worker, delays := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Second,
	})

	require.NoError(t, worker.Deliver(context.Background(), payload))
	assert.Equal(t, payload, body)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, generateHMACSHA256(payload, "s3cret"), signature)
	assert.Len(t, signature, 64)
	assert.Empty(t, *delays)
}

func TestDeliver_RetriesWithBackoff(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Empty(t, r.Header.Get(SignatureHeader), "no secret, no signature")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker, delays := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  100 * time.Millisecond,
	})

	require.NoError(t, worker.Deliver(context.Background(), "{}"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *delays)
}

func TestDeliver_GivesUp(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	worker, _ := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	})

	err := worker.Deliver(context.Background(), "{}")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestDeliver_CanceledContext(t *testing.T) {
	worker, _ := newTestWorker(&config.Config{
		WebhookURL:        "http://127.0.0.1:1",
		WebhookMaxRetries: 3,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, worker.Deliver(ctx, "{}"), context.Canceled)
}

func TestNewDatasetRefreshedEvent(t *testing.T) {
	early := time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2020, time.June, 10, 0, 0, 0, 0, time.UTC)
	dataset := &models.Dataset{
		LoadID:   uuid.New(),
		LoadedAt: late,
		Incidents: []models.Incident{
			{SchoolName: "Lincoln High", IncidentDate: &early},
			{SchoolName: "Hoover High", IncidentDate: &late},
		},
		Quality: models.QualityMetrics{CompletenessScore: 91.5},
	}
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	event := NewDatasetRefreshedEvent(dataset, 1, now)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, EventDatasetRefreshed, event.Type)
	assert.Equal(t, dataset.LoadID, event.LoadID)
	assert.Equal(t, 2, event.TotalIncidents)
	assert.Equal(t, 1, event.NewIncidents)
	assert.Equal(t, 91.5, event.CompletenessScore)
	require.NotNil(t, event.LatestIncident)
	assert.Equal(t, "Hoover High", event.LatestIncident.SchoolName)
	assert.Equal(t, now, event.Timestamp)
}
