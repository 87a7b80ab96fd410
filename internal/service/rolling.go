package service

import (
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

const (
	// DefaultRollingWindowDays - окно скользящих сумм по умолчанию
	DefaultRollingWindowDays = 365
	// MaxRollingWindowDays ограничивает окно сверху
	MaxRollingWindowDays = 3650
	// changeRatePeriod - период, за который считается изменение скользящего числа инцидентов
	changeRatePeriod = 30
)

// RollingPoint - значение скользящих сумм на одну календарную дату
type RollingPoint struct {
	Date                time.Time `json:"date"`
	Incidents           int       `json:"incidents"`
	IncidentsRolling    int       `json:"incidents_rolling"`
	KilledRolling       int       `json:"killed_rolling"`
	WoundedRolling      int       `json:"wounded_rolling"`
	CasualtiesRolling   int       `json:"casualties_rolling"`
	IncidentsChangeRate float64   `json:"incidents_change_rate"`
}

type dailyTotals struct {
	incidents, killed, wounded, casualties int
}

// RollingStatistics строит непрерывный дневной ряд от первой до последней даты
// и скользящие суммы за windowDays дней. Строки без даты не учитываются.
func RollingStatistics(incidents []models.Incident, windowDays int) []RollingPoint {
	if windowDays <= 0 {
		windowDays = DefaultRollingWindowDays
	}

	start, end := dateExtent(incidents)
	if start == nil {
		return []RollingPoint{}
	}

	days := daysBetween(*start, *end) + 1
	daily := make([]dailyTotals, days)
	for i := range incidents {
		inc := &incidents[i]
		if inc.IncidentDate == nil {
			continue
		}
		d := &daily[daysBetween(*start, *inc.IncidentDate)]
		d.incidents++
		d.killed += inc.NumberKilled
		d.wounded += inc.NumberWounded
		d.casualties += inc.TotalCasualties
	}

	points := make([]RollingPoint, days)
	var window dailyTotals
	for i := 0; i < days; i++ {
		window.incidents += daily[i].incidents
		window.killed += daily[i].killed
		window.wounded += daily[i].wounded
		window.casualties += daily[i].casualties
		if out := i - windowDays; out >= 0 {
			window.incidents -= daily[out].incidents
			window.killed -= daily[out].killed
			window.wounded -= daily[out].wounded
			window.casualties -= daily[out].casualties
		}

		points[i] = RollingPoint{
			Date:              start.AddDate(0, 0, i),
			Incidents:         daily[i].incidents,
			IncidentsRolling:  window.incidents,
			KilledRolling:     window.killed,
			WoundedRolling:    window.wounded,
			CasualtiesRolling: window.casualties,
		}
		if i >= changeRatePeriod {
			base := points[i-changeRatePeriod].IncidentsRolling
			// при нулевой базе изменение не определено, отдаем 0
			if base > 0 {
				points[i].IncidentsChangeRate = float64(window.incidents-base) / float64(base) * 100
			}
		}
	}
	return points
}
