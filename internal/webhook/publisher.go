package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

const (
	webhookQueueKey = "webhook_events"

	// EventDatasetRefreshed отправляется после каждой успешной перезагрузки таблицы
	EventDatasetRefreshed = "dataset.refreshed"
)

// WebhookEvent - структура для данных вебхука
type WebhookEvent struct {
	EventID           uuid.UUID        `json:"event_id"`
	Type              string           `json:"type"`
	LoadID            uuid.UUID        `json:"load_id"`
	LoadedAt          time.Time        `json:"loaded_at"`
	TotalIncidents    int              `json:"total_incidents"`
	NewIncidents      int              `json:"new_incidents"`
	CompletenessScore float64          `json:"completeness_score"`
	LatestIncident    *models.Incident `json:"latest_incident,omitempty"`
	Timestamp         time.Time        `json:"timestamp"`
}

// NewDatasetRefreshedEvent собирает событие по новой загрузке.
// newIncidents - число инцидентов с датой позже последней даты предыдущей загрузки.
func NewDatasetRefreshedEvent(dataset *models.Dataset, newIncidents int, now time.Time) WebhookEvent {
	return WebhookEvent{
		EventID:           uuid.New(),
		Type:              EventDatasetRefreshed,
		LoadID:            dataset.LoadID,
		LoadedAt:          dataset.LoadedAt,
		TotalIncidents:    len(dataset.Incidents),
		NewIncidents:      newIncidents,
		CompletenessScore: dataset.Quality.CompletenessScore,
		LatestIncident:    dataset.LatestIncident(),
		Timestamp:         now,
	}
}

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH слева, воркер забирает справа через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
