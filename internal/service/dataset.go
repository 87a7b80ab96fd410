package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const loadKey = "dataset"

// Причины неудачной загрузки для метрик
const (
	FailureFetch   = "fetch"
	FailureParse   = "parse"
	FailureUnknown = "unknown"
)

// DatasetService - явная мемоизация конвейера загрузки: кэш, затем загрузка и обогащение.
// Одновременные промахи кэша разделяют одну загрузку.
type DatasetService struct {
	loader    *Loader
	enricher  *Enricher
	cache     DatasetCache
	publisher webhook.WebhookPublisher
	metrics   PipelineMetrics
	logger    *logrus.Logger
	now       func() time.Time

	group singleflight.Group

	mu         sync.Mutex
	lastLatest *time.Time
}

// NewDatasetService создает сервис загрузок. publisher и metrics могут быть nil.
func NewDatasetService(
	loader *Loader,
	enricher *Enricher,
	cache DatasetCache,
	publisher webhook.WebhookPublisher,
	metrics PipelineMetrics,
	logger *logrus.Logger,
	now func() time.Time,
) *DatasetService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if now == nil {
		now = time.Now
	}
	return &DatasetService{
		loader:    loader,
		enricher:  enricher,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       now,
	}
}

var _ DatasetProvider = (*DatasetService)(nil)

// Dataset возвращает загрузку из кэша, при промахе загружает заново.
// Ошибка чтения кэша не фатальна: загрузка идет напрямую из источника.
func (s *DatasetService) Dataset(ctx context.Context) (*models.Dataset, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dataset",
		"method":  "Dataset",
	})

	cached, err := s.cache.Get(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read dataset cache, loading from source")
	} else if cached != nil {
		s.metrics.CacheHit()
		return cached, nil
	}
	s.metrics.CacheMiss()

	return s.load(ctx)
}

// Refresh сбрасывает кэш и выполняет новую загрузку
func (s *DatasetService) Refresh(ctx context.Context) (*models.Dataset, error) {
	if err := s.Invalidate(ctx); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "dataset",
			"method":  "Refresh",
		}).WithError(err).Warn("Failed to invalidate dataset cache")
	}
	return s.load(ctx)
}

// Invalidate сбрасывает кэш, следующий запрос загрузит данные заново
func (s *DatasetService) Invalidate(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("service: could not invalidate dataset cache: %w", err)
	}
	return nil
}

func (s *DatasetService) load(ctx context.Context) (*models.Dataset, error) {
	// загрузка общая для всех ожидающих, поэтому не зависит от отмены одного запроса
	ch := s.group.DoChan(loadKey, func() (interface{}, error) {
		return s.build(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Dataset), nil
	}
}

func (s *DatasetService) build(ctx context.Context) (*models.Dataset, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dataset",
		"method":  "build",
	})
	started := time.Now()

	incidents, quality, err := s.loader.Load(ctx)
	if err != nil {
		reason := FailureReason(err)
		s.metrics.LoadFailed(reason)
		log.WithError(err).WithField("reason", reason).Error("Dataset load failed")
		return nil, fmt.Errorf("service: could not load dataset: %w", err)
	}

	now := s.now()
	dataset := &models.Dataset{
		LoadID:    uuid.New(),
		LoadedAt:  now,
		Incidents: s.enricher.Enrich(incidents, now),
		Quality:   quality,
	}

	if err := s.cache.Set(ctx, dataset); err != nil {
		log.WithError(err).Warn("Failed to store dataset in cache")
	}
	s.metrics.LoadSucceeded(time.Since(started), quality)

	newIncidents := s.trackLatest(dataset)
	s.notify(ctx, dataset, newIncidents)

	log.WithFields(logrus.Fields{
		"load_id":       dataset.LoadID,
		"rows":          len(dataset.Incidents),
		"new_incidents": newIncidents,
	}).Info("Dataset loaded")
	return dataset, nil
}

// trackLatest запоминает последнюю дату загрузки и возвращает число инцидентов новее предыдущей
func (s *DatasetService) trackLatest(dataset *models.Dataset) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.lastLatest
	if latest := dataset.LatestIncident(); latest != nil {
		d := *latest.IncidentDate
		s.lastLatest = &d
	}
	if previous == nil {
		return 0
	}

	count := 0
	for i := range dataset.Incidents {
		if d := dataset.Incidents[i].IncidentDate; d != nil && d.After(*previous) {
			count++
		}
	}
	return count
}

func (s *DatasetService) notify(ctx context.Context, dataset *models.Dataset, newIncidents int) {
	if s.publisher == nil {
		return
	}
	event := webhook.NewDatasetRefreshedEvent(dataset, newIncidents, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":  "dataset",
			"method":   "notify",
			"event_id": event.EventID,
		}).WithError(err).Warn("Failed to publish dataset refreshed event")
	}
}

// FailureReason относит ошибку загрузки к одной из причин для метрик
func FailureReason(err error) string {
	var fetchErr *models.DataFetchError
	if errors.As(err, &fetchErr) {
		return FailureFetch
	}
	var parseErr *models.DataParseError
	if errors.As(err, &parseErr) {
		return FailureParse
	}
	return FailureUnknown
}

// NoopMetrics ничего не собирает
type NoopMetrics struct{}

func (NoopMetrics) CacheHit() {}
func (NoopMetrics) CacheMiss() {}
func (NoopMetrics) LoadSucceeded(time.Duration, models.QualityMetrics) {}
func (NoopMetrics) LoadFailed(string) {}
