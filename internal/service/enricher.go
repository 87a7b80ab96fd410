package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

// Enricher вычисляет производные поля: временные, географические и тяжесть.
// Все поля выводятся только из базовых, поэтому повторное обогащение дает тот же результат.
type Enricher struct {
	classifier models.Classifier
}

// NewEnricher создает обогатитель с заданным классификатором тяжести
func NewEnricher(classifier models.Classifier) *Enricher {
	return &Enricher{classifier: classifier}
}

// Enrich возвращает новый срез с заполненными производными полями, вход не изменяется
func (e *Enricher) Enrich(incidents []models.Incident, now time.Time) []models.Incident {
	out := make([]models.Incident, len(incidents))
	copy(out, incidents)

	today := dateOf(now)
	for i := range out {
		e.enrichRow(&out[i], today)
	}
	assignRegionGaps(out)
	return out
}

func (e *Enricher) enrichRow(inc *models.Incident, today time.Time) {
	inc.Year, inc.MonthAbbrev, inc.DayOfWeekAbbrev = nil, nil, nil
	inc.MonthNumber, inc.DayOfWeekNumber, inc.Quarter = nil, nil, nil
	inc.AcademicYear, inc.DaysSinceIncident = nil, nil
	inc.DaysSincePreviousInRegion = nil

	if inc.IncidentDate != nil {
		d := *inc.IncidentDate
		year := d.Year()
		month := int(d.Month())
		// понедельник = 0, воскресенье = 6
		weekday := (int(d.Weekday()) + 6) % 7
		quarter := (month-1)/3 + 1
		monthAbbrev := d.Format("Jan")
		dayAbbrev := d.Format("Mon")
		academic := AcademicYear(year, month)
		since := daysBetween(d, today)

		inc.Year = &year
		inc.MonthNumber = &month
		inc.MonthAbbrev = &monthAbbrev
		inc.DayOfWeekNumber = &weekday
		inc.DayOfWeekAbbrev = &dayAbbrev
		inc.Quarter = &quarter
		inc.AcademicYear = &academic
		inc.DaysSinceIncident = &since
	}

	inc.RegionName = models.RegionName(inc.RegionCode)

	inc.TotalCasualties = inc.NumberKilled + inc.NumberWounded
	inc.IsFatal = inc.NumberKilled > 0
	inc.IsMassCasualty = e.classifier.IsMassCasualty(inc.TotalCasualties)
	inc.Severity = e.classifier.Classify(inc.NumberKilled, inc.NumberWounded)
}

// AcademicYear возвращает учебный год (август - июль), к которому относится месяц
func AcademicYear(year, month int) string {
	if month < 8 {
		return fmt.Sprintf("%d-%d", year-1, year)
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}

// assignRegionGaps считает интервал в днях до предыдущего по дате инцидента того же региона.
// Первый инцидент региона, строки без даты и без кода региона получают nil.
func assignRegionGaps(incidents []models.Incident) {
	groups := make(map[string][]int)
	for i := range incidents {
		inc := &incidents[i]
		if inc.IncidentDate == nil || inc.RegionCode == "" {
			continue
		}
		groups[inc.RegionCode] = append(groups[inc.RegionCode], i)
	}

	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			return incidents[idxs[a]].IncidentDate.Before(*incidents[idxs[b]].IncidentDate)
		})
		for k := 1; k < len(idxs); k++ {
			prev := *incidents[idxs[k-1]].IncidentDate
			cur := &incidents[idxs[k]]
			gap := daysBetween(prev, *cur.IncidentDate)
			cur.DaysSincePreviousInRegion = &gap
		}
	}
}

// dateOf отбрасывает время, сохраняя календарную дату в часовом поясе t
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween - число календарных дней от from до to
func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}
