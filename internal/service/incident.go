package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=../handler/http/v1/mocks/mock_incident_service.go -package=mocks

// ErrInvalidFilter - критерии фильтрации противоречивы или вне допустимых границ
var ErrInvalidFilter = errors.New("invalid filter")

// IncidentService определяет контракт бизнес-логики дашборда
type IncidentService interface {
	ListIncidents(ctx context.Context, criteria models.FilterCriteria) (*IncidentView, error)
	GetSummary(ctx context.Context, criteria models.FilterCriteria) (*StatisticalSummary, error)
	GetRollingStatistics(ctx context.Context, criteria models.FilterCriteria, windowDays int) ([]RollingPoint, error)
	GetFilterOptions(ctx context.Context) (*FilterOptions, error)
	GetQuality(ctx context.Context) (*QualityReport, error)
	RefreshDataset(ctx context.Context) (*QualityReport, error)
}

// IncidentView - отфильтрованные строки вместе с описанием загрузки
type IncidentView struct {
	LoadID    uuid.UUID         `json:"load_id"`
	LoadedAt  time.Time         `json:"loaded_at"`
	Incidents []models.Incident `json:"incidents"`
	Filter    FilterSummary     `json:"filter"`
}

// QualityReport - метрики качества загрузки и их текстовый уровень
type QualityReport struct {
	LoadID         uuid.UUID             `json:"load_id"`
	LoadedAt       time.Time             `json:"loaded_at"`
	Metrics        models.QualityMetrics `json:"metrics"`
	Level          string                `json:"level"`
	LatestIncident *models.Incident      `json:"latest_incident"`
}

type incidentService struct {
	datasets DatasetProvider
	logger   *logrus.Logger
	now      func() time.Time
}

// NewIncidentService создает сервис поверх провайдера загрузок
func NewIncidentService(datasets DatasetProvider, logger *logrus.Logger, now func() time.Time) IncidentService {
	if now == nil {
		now = time.Now
	}
	return &incidentService{
		datasets: datasets,
		logger:   logger,
		now:      now,
	}
}

// ListIncidents возвращает строки, прошедшие фильтр
func (s *incidentService) ListIncidents(ctx context.Context, criteria models.FilterCriteria) (*IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"preset":  criteria.Preset,
	})

	if err := ValidateCriteria(criteria); err != nil {
		log.WithError(err).Warn("Rejected filter criteria")
		return nil, err
	}

	dataset, err := s.datasets.Dataset(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to get dataset")
		return nil, fmt.Errorf("service: could not get dataset: %w", err)
	}

	filtered := Filter(dataset.Incidents, criteria, s.now())
	log.WithField("count", len(filtered)).Info("Incidents filtered successfully")

	return &IncidentView{
		LoadID:    dataset.LoadID,
		LoadedAt:  dataset.LoadedAt,
		Incidents: filtered,
		Filter:    SummarizeFilter(filtered, len(dataset.Incidents)),
	}, nil
}

// GetSummary считает статистику по отфильтрованным строкам
func (s *incidentService) GetSummary(ctx context.Context, criteria models.FilterCriteria) (*StatisticalSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetSummary",
	})

	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		log.WithError(err).Error("Failed to filter incidents for summary")
		return nil, err
	}

	summary := Summarize(filtered, s.now())
	return &summary, nil
}

// GetRollingStatistics строит скользящие суммы по отфильтрованным строкам
func (s *incidentService) GetRollingStatistics(ctx context.Context, criteria models.FilterCriteria, windowDays int) ([]RollingPoint, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetRollingStatistics",
		"window_days": windowDays,
	})

	if windowDays > MaxRollingWindowDays {
		return nil, fmt.Errorf("%w: window_days must not exceed %d", ErrInvalidFilter, MaxRollingWindowDays)
	}

	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		log.WithError(err).Error("Failed to filter incidents for rolling statistics")
		return nil, err
	}
	return RollingStatistics(filtered, windowDays), nil
}

// GetFilterOptions возвращает допустимые значения фильтров
func (s *incidentService) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	dataset, err := s.datasets.Dataset(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "incident",
			"method":  "GetFilterOptions",
		}).WithError(err).Error("Failed to get dataset")
		return nil, fmt.Errorf("service: could not get dataset: %w", err)
	}

	opts := BuildFilterOptions(dataset.Incidents, s.now())
	return &opts, nil
}

// GetQuality возвращает метрики качества текущей загрузки
func (s *incidentService) GetQuality(ctx context.Context) (*QualityReport, error) {
	dataset, err := s.datasets.Dataset(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "incident",
			"method":  "GetQuality",
		}).WithError(err).Error("Failed to get dataset")
		return nil, fmt.Errorf("service: could not get dataset: %w", err)
	}
	return newQualityReport(dataset), nil
}

// RefreshDataset сбрасывает кэш и загружает данные заново
func (s *incidentService) RefreshDataset(ctx context.Context) (*QualityReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "RefreshDataset",
	})
	log.Info("Refreshing dataset")

	dataset, err := s.datasets.Refresh(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to refresh dataset")
		return nil, fmt.Errorf("service: could not refresh dataset: %w", err)
	}

	log.WithField("load_id", dataset.LoadID).Info("Dataset refreshed successfully")
	return newQualityReport(dataset), nil
}

func (s *incidentService) filtered(ctx context.Context, criteria models.FilterCriteria) ([]models.Incident, error) {
	if err := ValidateCriteria(criteria); err != nil {
		return nil, err
	}
	dataset, err := s.datasets.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not get dataset: %w", err)
	}
	return Filter(dataset.Incidents, criteria, s.now()), nil
}

func newQualityReport(dataset *models.Dataset) *QualityReport {
	return &QualityReport{
		LoadID:         dataset.LoadID,
		LoadedAt:       dataset.LoadedAt,
		Metrics:        dataset.Quality,
		Level:          models.QualityLevel(dataset.Quality.CompletenessScore),
		LatestIncident: dataset.LatestIncident(),
	}
}

// ValidateCriteria проверяет согласованность критериев, не обращаясь к данным
func ValidateCriteria(c models.FilterCriteria) error {
	if c.DateRange != nil && c.DateRange.From != nil && c.DateRange.To != nil &&
		c.DateRange.From.After(*c.DateRange.To) {
		return fmt.Errorf("%w: date range start is after its end", ErrInvalidFilter)
	}
	if c.MinCasualties != nil && *c.MinCasualties < 0 {
		return fmt.Errorf("%w: min casualties must not be negative", ErrInvalidFilter)
	}
	if c.TopRegions < 0 {
		return fmt.Errorf("%w: top regions must not be negative", ErrInvalidFilter)
	}
	return nil
}
