package service

import (
	"math"
	"sort"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

// SummaryStats - ключевые показатели по отфильтрованной таблице
type SummaryStats struct {
	TotalIncidents           int        `json:"total_incidents"`
	TotalCasualties          int        `json:"total_casualties"`
	TotalKilled              int        `json:"total_killed"`
	TotalWounded             int        `json:"total_wounded"`
	RegionsAffected          int        `json:"regions_affected"`
	CitiesAffected           int        `json:"cities_affected"`
	SchoolsAffected          int        `json:"schools_affected"`
	AvgCasualtiesPerIncident float64    `json:"avg_casualties_per_incident"`
	AvgDaysBetweenIncidents  float64    `json:"avg_days_between_incidents"`
	NoCasualtyRate           float64    `json:"no_casualty_rate"`
	FatalRate                float64    `json:"fatal_rate"`
	MassCasualtyRate         float64    `json:"mass_casualty_rate"`
	WeekdayRate              float64    `json:"weekday_rate"`
	SchoolYearRate           float64    `json:"school_year_rate"`
	DateRangeStart           *time.Time `json:"date_range_start"`
	DateRangeEnd             *time.Time `json:"date_range_end"`
	YearsCovered             int        `json:"years_covered"`
	CurrentYearPartial       bool       `json:"current_year_partial"`
	DaysSinceLast            *int       `json:"days_since_last"`
	TopRegion                string     `json:"top_region,omitempty"`
	TopRegionCount           int        `json:"top_region_count"`
	TopCity                  string     `json:"top_city,omitempty"`
	TopCityCount             int        `json:"top_city_count"`
}

// TemporalStats - распределение инцидентов во времени
type TemporalStats struct {
	AvgIncidentsPerYear        float64  `json:"avg_incidents_per_year"`
	YearWithMostIncidents      *int     `json:"year_with_most_incidents"`
	AvgDaysBetweenIncidents    *float64 `json:"avg_days_between_incidents"`
	MedianDaysBetweenIncidents *float64 `json:"median_days_between_incidents"`
	TrendDirection             string   `json:"trend_direction"`
}

// GeographicStats - географический разброс
type GeographicStats struct {
	RegionsAffected    int     `json:"regions_affected"`
	CitiesAffected     int     `json:"cities_affected"`
	SchoolsAffected    int     `json:"schools_affected"`
	ConcentrationIndex float64 `json:"concentration_index"`
}

// SeverityStats - показатели тяжести
type SeverityStats struct {
	FatalityRate             float64 `json:"fatality_rate"`
	AvgCasualtiesPerIncident float64 `json:"avg_casualties_per_incident"`
	MassCasualtyRate         float64 `json:"mass_casualty_rate"`
	AvgKilledWhenFatal       float64 `json:"avg_killed_when_fatal"`
	AvgWoundedWhenInjuries   float64 `json:"avg_wounded_when_injuries"`
}

// PatternStats - наиболее частые значения
type PatternStats struct {
	MostCommonDay         string  `json:"most_common_day"`
	MostCommonMonth       string  `json:"most_common_month"`
	MostCommonIntent      string  `json:"most_common_intent"`
	WeekendVsWeekdayRatio float64 `json:"weekend_vs_weekday_ratio"`
}

// StatisticalSummary объединяет показатели по категориям
type StatisticalSummary struct {
	Summary    SummaryStats    `json:"summary"`
	Temporal   TemporalStats   `json:"temporal"`
	Geographic GeographicStats `json:"geographic"`
	Severity   SeverityStats   `json:"severity"`
	Patterns   PatternStats    `json:"patterns"`
}

const notAvailable = "N/A"

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Summarize считает сводку и статистику по категориям. Пустой вход дает нулевые значения.
func Summarize(incidents []models.Incident, now time.Time) StatisticalSummary {
	if len(incidents) == 0 {
		return StatisticalSummary{
			Patterns: PatternStats{
				MostCommonDay:    notAvailable,
				MostCommonMonth:  notAvailable,
				MostCommonIntent: notAvailable,
			},
			Temporal: TemporalStats{TrendDirection: TrendDecreasing},
		}
	}
	return StatisticalSummary{
		Summary:    summaryStats(incidents, now),
		Temporal:   temporalStats(incidents),
		Geographic: geographicStats(incidents),
		Severity:   severityStats(incidents),
		Patterns:   patternStats(incidents),
	}
}

func summaryStats(incidents []models.Incident, now time.Time) SummaryStats {
	n := len(incidents)
	s := SummaryStats{TotalIncidents: n}

	regions := make(map[string]int)
	cities := make(map[string]int)
	schools := make(map[string]struct{})
	years := make(map[int]struct{})
	var noCasualty, fatal, mass, dated, weekday, schoolYear int
	maxYear := 0

	for i := range incidents {
		inc := &incidents[i]
		s.TotalCasualties += inc.TotalCasualties
		s.TotalKilled += inc.NumberKilled
		s.TotalWounded += inc.NumberWounded

		if inc.RegionCode != "" {
			regions[inc.RegionCode]++
		}
		if inc.City != "" {
			cities[inc.City+"\x1f"+inc.RegionCode]++
		}
		if inc.SchoolName != "" {
			schools[inc.SchoolName] = struct{}{}
		}

		if inc.TotalCasualties == 0 {
			noCasualty++
		}
		if inc.IsFatal {
			fatal++
		}
		if inc.IsMassCasualty {
			mass++
		}

		if inc.IncidentDate == nil {
			continue
		}
		dated++
		if *inc.DayOfWeekNumber < 5 {
			weekday++
		}
		if m := *inc.MonthNumber; m < 6 || m > 8 {
			schoolYear++
		}
		years[*inc.Year] = struct{}{}
		if *inc.Year > maxYear {
			maxYear = *inc.Year
		}
	}

	s.RegionsAffected = len(regions)
	s.CitiesAffected = len(cities)
	s.SchoolsAffected = len(schools)
	s.AvgCasualtiesPerIncident = float64(s.TotalCasualties) / float64(n)
	s.NoCasualtyRate = percent(noCasualty, n)
	s.FatalRate = percent(fatal, n)
	s.MassCasualtyRate = percent(mass, n)
	s.WeekdayRate = percent(weekday, dated)
	s.SchoolYearRate = percent(schoolYear, dated)
	s.YearsCovered = len(years)
	s.CurrentYearPartial = dated > 0 && maxYear == now.Year()

	start, end := dateExtent(incidents)
	s.DateRangeStart, s.DateRangeEnd = start, end
	if start != nil {
		if n > 1 {
			s.AvgDaysBetweenIncidents = float64(daysBetween(*start, *end)) / float64(n)
		}
		since := daysBetween(*end, now)
		s.DaysSinceLast = &since
	}

	if code, count := mostCommon(regions); code != "" {
		s.TopRegion = regionLabel(code)
		s.TopRegionCount = count
	}
	if key, count := mostCommon(cities); key != "" {
		city, code := splitCityKey(key)
		s.TopCity = city + ", " + regionLabel(code)
		s.TopCityCount = count
	}
	return s
}

func temporalStats(incidents []models.Incident) TemporalStats {
	yearly := make(map[int]int)
	var gaps []int
	for i := range incidents {
		inc := &incidents[i]
		if inc.Year != nil {
			yearly[*inc.Year]++
		}
		if inc.DaysSincePreviousInRegion != nil {
			gaps = append(gaps, *inc.DaysSincePreviousInRegion)
		}
	}

	t := TemporalStats{TrendDirection: TrendDecreasing}
	if len(yearly) > 0 {
		years := make([]int, 0, len(yearly))
		total := 0
		for y, c := range yearly {
			years = append(years, y)
			total += c
		}
		sort.Ints(years)
		t.AvgIncidentsPerYear = float64(total) / float64(len(years))

		peak := years[0]
		for _, y := range years {
			if yearly[y] > yearly[peak] {
				peak = y
			}
		}
		t.YearWithMostIncidents = &peak

		// последние пять лет против первых пяти
		head := years[:min(5, len(years))]
		tail := years[max(0, len(years)-5):]
		if meanCount(yearly, tail) > meanCount(yearly, head) {
			t.TrendDirection = TrendIncreasing
		}
	}

	if len(gaps) > 0 {
		mean, median := meanMedian(gaps)
		t.AvgDaysBetweenIncidents = &mean
		t.MedianDaysBetweenIncidents = &median
	}
	return t
}

func geographicStats(incidents []models.Incident) GeographicStats {
	regions := make(map[string]int)
	cities := make(map[string]struct{})
	schools := make(map[string]struct{})
	for i := range incidents {
		inc := &incidents[i]
		if inc.RegionCode != "" {
			regions[inc.RegionCode]++
		}
		if inc.City != "" {
			cities[inc.City] = struct{}{}
		}
		if inc.SchoolName != "" {
			schools[inc.SchoolName] = struct{}{}
		}
	}

	g := GeographicStats{
		RegionsAffected: len(regions),
		CitiesAffected:  len(cities),
		SchoolsAffected: len(schools),
	}

	// коэффициент вариации числа инцидентов по регионам (выборочное отклонение)
	if len(regions) > 1 {
		counts := make([]float64, 0, len(regions))
		sum := 0.0
		for _, c := range regions {
			counts = append(counts, float64(c))
			sum += float64(c)
		}
		mean := sum / float64(len(counts))
		variance := 0.0
		for _, c := range counts {
			variance += (c - mean) * (c - mean)
		}
		variance /= float64(len(counts) - 1)
		if mean > 0 {
			g.ConcentrationIndex = math.Sqrt(variance) / mean
		}
	}
	return g
}

func severityStats(incidents []models.Incident) SeverityStats {
	n := len(incidents)
	var casualties, fatal, mass, killedWhenFatal, injured, wounded int
	for i := range incidents {
		inc := &incidents[i]
		casualties += inc.TotalCasualties
		if inc.IsFatal {
			fatal++
			killedWhenFatal += inc.NumberKilled
		}
		if inc.IsMassCasualty {
			mass++
		}
		if inc.NumberWounded > 0 {
			injured++
			wounded += inc.NumberWounded
		}
	}

	s := SeverityStats{
		FatalityRate:             percent(fatal, n),
		AvgCasualtiesPerIncident: float64(casualties) / float64(n),
		MassCasualtyRate:         percent(mass, n),
	}
	if fatal > 0 {
		s.AvgKilledWhenFatal = float64(killedWhenFatal) / float64(fatal)
	}
	if injured > 0 {
		s.AvgWoundedWhenInjuries = float64(wounded) / float64(injured)
	}
	return s
}

func patternStats(incidents []models.Incident) PatternStats {
	days := make(map[string]int)
	months := make(map[string]int)
	intents := make(map[string]int)
	var weekend, weekday int
	for i := range incidents {
		inc := &incidents[i]
		if inc.DayOfWeekAbbrev != nil {
			days[*inc.DayOfWeekAbbrev]++
			if *inc.DayOfWeekNumber >= 5 {
				weekend++
			} else {
				weekday++
			}
		}
		if inc.MonthAbbrev != nil {
			months[*inc.MonthAbbrev]++
		}
		if inc.Intent != "" {
			intents[inc.Intent]++
		}
	}

	p := PatternStats{
		MostCommonDay:    orNotAvailable(mostCommon(days)),
		MostCommonMonth:  orNotAvailable(mostCommon(months)),
		MostCommonIntent: orNotAvailable(mostCommon(intents)),
	}
	if weekday > 0 {
		p.WeekendVsWeekdayRatio = float64(weekend) / float64(weekday)
	}
	return p
}

// mostCommon возвращает самое частое значение; при равенстве - лексически меньшее
func mostCommon(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best, bestCount
}

func orNotAvailable(value string, _ int) string {
	if value == "" {
		return notAvailable
	}
	return value
}

func regionLabel(code string) string {
	if name := models.RegionName(code); name != nil {
		return *name
	}
	return code
}

func splitCityKey(key string) (string, string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '\x1f' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func dateExtent(incidents []models.Incident) (*time.Time, *time.Time) {
	var start, end *time.Time
	for i := range incidents {
		d := incidents[i].IncidentDate
		if d == nil {
			continue
		}
		if start == nil || d.Before(*start) {
			start = d
		}
		if end == nil || d.After(*end) {
			end = d
		}
	}
	return start, end
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func meanCount(yearly map[int]int, years []int) float64 {
	if len(years) == 0 {
		return 0
	}
	sum := 0
	for _, y := range years {
		sum += yearly[y]
	}
	return float64(sum) / float64(len(years))
}

func meanMedian(values []int) (float64, float64) {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	mean := float64(sum) / float64(len(sorted))
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return mean, float64(sorted[mid])
	}
	return mean, float64(sorted[mid-1]+sorted[mid]) / 2
}
