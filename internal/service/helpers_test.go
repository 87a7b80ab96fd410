package service

import (
	"bytes"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ptr[T any](v T) *T {
	return &v
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// incident собирает строку с заполненными координатами и описанием
func incident(date *time.Time, region, city, school string, killed, wounded int) models.Incident {
	return models.Incident{
		IncidentDate:  date,
		RegionCode:    region,
		City:          city,
		SchoolName:    school,
		Latitude:      ptr(34.05),
		Longitude:     ptr(-118.24),
		NumberKilled:  killed,
		NumberWounded: wounded,
		Narrative:     ptr("narrative"),
	}
}

// enrichedFixture - небольшая обогащенная таблица для тестов фильтра и статистики
func enrichedFixture(now time.Time) []models.Incident {
	rows := []models.Incident{
		incident(day(2019, time.March, 4), "CA", "Los Angeles", "Lincoln High", 0, 0),
		incident(day(2020, time.January, 5), "CA", "Los Angeles", "Roosevelt Middle", 0, 2),
		incident(day(2020, time.June, 10), "CA", "San Diego", "Hoover High", 1, 0),
		incident(day(2021, time.September, 15), "TX", "Austin", "Travis Elementary", 2, 3),
		incident(day(2021, time.October, 2), "TX", "Dallas", "Lakewood High", 1, 2),
		incident(day(2022, time.May, 24), "TX", "Uvalde", "Robb Elementary", 21, 17),
		incident(day(2022, time.August, 20), "NY", "Buffalo", "Eastside High", 0, 1),
		incident(nil, "FL", "Miami", "Coral High", 0, 0),
	}
	rows[0].Intent, rows[1].Intent, rows[2].Intent = "Unknown", "Dispute", "Dispute"
	rows[3].Intent, rows[4].Intent, rows[5].Intent = "Attack", "Dispute", "Attack"
	rows[6].Outcome = "Arrested"
	return NewEnricher(models.NewClassifier(models.DefaultMassCasualtyThreshold)).Enrich(rows, now)
}
