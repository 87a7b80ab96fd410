package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

// Loader получает сырую таблицу, удаляет дубликаты и считает метрики качества
type Loader struct {
	repo              IncidentRepository
	logger            *logrus.Logger
	now               func() time.Time
	dropInvalidCoords bool
}

// NewLoader создает загрузчик. dropInvalidCoords включает политику удаления строк
// без координат при загрузке; по умолчанию такие строки остаются в таблице.
func NewLoader(repo IncidentRepository, logger *logrus.Logger, now func() time.Time, dropInvalidCoords bool) *Loader {
	if now == nil {
		now = time.Now
	}
	return &Loader{
		repo:              repo,
		logger:            logger,
		now:               now,
		dropInvalidCoords: dropInvalidCoords,
	}
}

// Load возвращает очищенную таблицу и метрики качества
func (l *Loader) Load(ctx context.Context) ([]models.Incident, models.QualityMetrics, error) {
	log := l.logger.WithFields(logrus.Fields{
		"service": "loader",
		"method":  "Load",
	})
	started := time.Now()

	raw, err := l.repo.FetchIncidents(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch incidents from repository")
		return nil, models.QualityMetrics{}, fmt.Errorf("loader: could not fetch incidents: %w", err)
	}
	if len(raw.DroppedColumns) > 0 {
		log.WithField("columns", raw.DroppedColumns).Debug("Dropped administrative columns")
	}

	quality := models.QualityMetrics{
		InitialRows:           len(raw.Incidents),
		InvalidCasualtyCounts: raw.InvalidCasualtyCounts,
	}

	// Пропуски дат и координат считаются до удаления дубликатов
	var latest *time.Time
	for i := range raw.Incidents {
		inc := &raw.Incidents[i]
		if inc.IncidentDate == nil {
			quality.MissingDates++
		} else if latest == nil || inc.IncidentDate.After(*latest) {
			latest = inc.IncidentDate
		}
		if !inc.HasCoordinates() {
			quality.MissingCoords++
		}
	}
	if latest != nil {
		days := daysBetween(*latest, l.now())
		quality.DataFreshnessDays = &days
	}

	incidents, duplicates := Deduplicate(raw.Incidents)
	quality.DuplicateIncidents = duplicates

	for i := range incidents {
		if incidents[i].Narrative == nil {
			quality.MissingNarratives++
		}
	}

	if l.dropInvalidCoords {
		kept := make([]models.Incident, 0, len(incidents))
		for _, inc := range incidents {
			if inc.HasCoordinates() {
				kept = append(kept, inc)
			}
		}
		quality.DroppedGeoInvalid = len(incidents) - len(kept)
		incidents = kept
	}

	quality.FinalRows = len(incidents)
	quality.LoadTimeSeconds = math.Round(time.Since(started).Seconds()*100) / 100
	quality.CompletenessScore = models.CompletenessScore(quality)

	log.WithFields(logrus.Fields{
		"initial_rows":       quality.InitialRows,
		"final_rows":         quality.FinalRows,
		"duplicates":         quality.DuplicateIncidents,
		"completeness_score": quality.CompletenessScore,
	}).Info("Incidents loaded")

	return incidents, quality, nil
}

// Deduplicate оставляет первое вхождение каждого ключа (дата, город, регион, школа)
// в исходном порядке и возвращает число отброшенных строк.
func Deduplicate(incidents []models.Incident) ([]models.Incident, int) {
	seen := make(map[string]struct{}, len(incidents))
	unique := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		key := inc.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, inc)
	}
	return unique, len(incidents) - len(unique)
}
