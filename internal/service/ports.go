package service

import (
	"context"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// IncidentRepository определяет контракт источника сырых данных об инцидентах
type IncidentRepository interface {
	FetchIncidents(ctx context.Context) (*models.RawTable, error)
}

// DatasetCache хранит последнюю загрузку под фиксированным ключом.
// Get возвращает nil, nil при промахе или истекшем сроке.
type DatasetCache interface {
	Get(ctx context.Context) (*models.Dataset, error)
	Set(ctx context.Context, dataset *models.Dataset) error
	Invalidate(ctx context.Context) error
}

// DatasetProvider отдает актуальную обогащенную загрузку
type DatasetProvider interface {
	Dataset(ctx context.Context) (*models.Dataset, error)
	Refresh(ctx context.Context) (*models.Dataset, error)
}

// PipelineMetrics собирает метрики конвейера загрузки
type PipelineMetrics interface {
	CacheHit()
	CacheMiss()
	LoadSucceeded(duration time.Duration, quality models.QualityMetrics)
	LoadFailed(reason string)
}
