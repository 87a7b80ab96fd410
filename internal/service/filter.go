package service

import (
	"sort"
	"strings"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
)

// Filter возвращает строки, удовлетворяющие всем активным условиям.
// Входной срез не изменяется, результат - независимая копия.
func Filter(incidents []models.Incident, criteria models.FilterCriteria, now time.Time) []models.Incident {
	predicates := buildPredicates(incidents, criteria, now)

	matched := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if matchesAll(&inc, predicates) {
			matched = append(matched, inc)
		}
	}

	if criteria.TopRegions > 0 {
		matched = restrictToTopRegions(matched, criteria.TopRegions)
	}
	return matched
}

type predicate func(inc *models.Incident) bool

func matchesAll(inc *models.Incident, predicates []predicate) bool {
	for _, p := range predicates {
		if !p(inc) {
			return false
		}
	}
	return true
}

func buildPredicates(incidents []models.Incident, c models.FilterCriteria, now time.Time) []predicate {
	var predicates []predicate

	if p := presetPredicate(c.Preset, now); p != nil {
		predicates = append(predicates, p)
	}

	if len(c.Regions) > 0 {
		regions := upperSet(c.Regions)
		predicates = append(predicates, func(inc *models.Incident) bool {
			if _, ok := regions[strings.ToUpper(inc.RegionCode)]; ok {
				return true
			}
			if inc.RegionName != nil {
				_, ok := regions[strings.ToUpper(*inc.RegionName)]
				return ok
			}
			return false
		})
	}

	if len(c.Intents) > 0 {
		intents := upperSet(c.Intents)
		predicates = append(predicates, func(inc *models.Incident) bool {
			_, ok := intents[strings.ToUpper(strings.TrimSpace(inc.Intent))]
			return ok
		})
	}

	if len(c.Outcomes) > 0 {
		outcomes := upperSet(c.Outcomes)
		predicates = append(predicates, func(inc *models.Incident) bool {
			_, ok := outcomes[strings.ToUpper(strings.TrimSpace(inc.Outcome))]
			return ok
		})
	}

	if c.DateRange != nil {
		from, to := resolveDateRange(incidents, c.DateRange, now)
		predicates = append(predicates, func(inc *models.Incident) bool {
			if inc.IncidentDate == nil || from == nil || to == nil {
				return false
			}
			d := *inc.IncidentDate
			return !d.Before(*from) && !d.After(*to)
		})
	}

	if c.MinCasualties != nil {
		minimum := *c.MinCasualties
		predicates = append(predicates, func(inc *models.Incident) bool {
			return inc.TotalCasualties >= minimum
		})
	}

	if floor := c.MinSeverity.Rank(); floor >= 0 {
		predicates = append(predicates, func(inc *models.Incident) bool {
			return inc.Severity.Rank() >= floor
		})
	}

	if len(c.Years) > 0 {
		years := make(map[int]struct{}, len(c.Years))
		for _, y := range c.Years {
			years[y] = struct{}{}
		}
		predicates = append(predicates, func(inc *models.Incident) bool {
			if inc.Year == nil {
				return false
			}
			_, ok := years[*inc.Year]
			return ok
		})
	}

	if len(c.Months) > 0 {
		months := make(map[string]struct{}, len(c.Months))
		for _, m := range c.Months {
			months[monthKey(m)] = struct{}{}
		}
		predicates = append(predicates, func(inc *models.Incident) bool {
			if inc.MonthAbbrev == nil {
				return false
			}
			_, ok := months[monthKey(*inc.MonthAbbrev)]
			return ok
		})
	}

	if c.FatalOnly {
		predicates = append(predicates, func(inc *models.Incident) bool {
			return inc.IsFatal
		})
	}

	return predicates
}

func presetPredicate(preset models.Preset, now time.Time) predicate {
	currentYear := now.Year()
	yearIs := func(match func(year int) bool) predicate {
		return func(inc *models.Incident) bool {
			return inc.Year != nil && match(*inc.Year)
		}
	}

	switch preset {
	case models.PresetLastYearComplete:
		return yearIs(func(y int) bool { return y == currentYear-1 })
	case models.PresetLastFiveYears:
		return yearIs(func(y int) bool { return y >= currentYear-5 })
	case models.PresetCurrentYear:
		return yearIs(func(y int) bool { return y == currentYear })
	case models.PresetFatalOnly:
		return func(inc *models.Incident) bool { return inc.IsFatal }
	case models.PresetMassCasualties:
		return func(inc *models.Incident) bool { return inc.IsMassCasualty }
	default:
		return nil
	}
}

// resolveDateRange подставляет границы по умолчанию: самая ранняя дата таблицы
// и минимум из самой поздней даты и сегодняшнего дня.
func resolveDateRange(incidents []models.Incident, r *models.DateRange, now time.Time) (*time.Time, *time.Time) {
	lower, upper := DateBounds(incidents, now)
	from, to := lower, upper
	if r.From != nil {
		d := dateOf(*r.From)
		from = &d
	}
	if r.To != nil {
		d := dateOf(*r.To)
		to = &d
	}
	return from, to
}

// DateBounds возвращает диапазон дат по умолчанию для фильтра.
// Верхняя граница не превышает сегодняшний день. Без датированных строк возвращает nil, nil.
func DateBounds(incidents []models.Incident, now time.Time) (*time.Time, *time.Time) {
	var earliest, latest *time.Time
	for i := range incidents {
		d := incidents[i].IncidentDate
		if d == nil {
			continue
		}
		if earliest == nil || d.Before(*earliest) {
			earliest = d
		}
		if latest == nil || d.After(*latest) {
			latest = d
		}
	}
	if earliest == nil {
		return nil, nil
	}

	lower := *earliest
	upper := *latest
	if today := dateOf(now); today.Before(upper) {
		upper = today
	}
	return &lower, &upper
}

// restrictToTopRegions оставляет строки n регионов с наибольшим числом инцидентов.
// При равенстве выше регион с меньшим кодом.
func restrictToTopRegions(incidents []models.Incident, n int) []models.Incident {
	counts := make(map[string]int)
	for i := range incidents {
		counts[incidents[i].RegionCode]++
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(a, b int) bool {
		if counts[codes[a]] != counts[codes[b]] {
			return counts[codes[a]] > counts[codes[b]]
		}
		return codes[a] < codes[b]
	})
	if len(codes) > n {
		codes = codes[:n]
	}
	top := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		top[code] = struct{}{}
	}

	kept := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if _, ok := top[inc.RegionCode]; ok {
			kept = append(kept, inc)
		}
	}
	return kept
}

func upperSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[strings.ToUpper(v)] = struct{}{}
		}
	}
	return set
}

// monthKey приводит "January", "jan", "Jan" к одному ключу
func monthKey(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	if len(m) > 3 {
		m = m[:3]
	}
	return m
}

// FilterSummary - сводка по результату фильтрации
type FilterSummary struct {
	Shown        int     `json:"shown"`
	Original     int     `json:"original"`
	ReductionPct float64 `json:"reduction_pct"`
	RegionsShown int     `json:"regions_shown"`
	Years        []int   `json:"years"`
}

// SummarizeFilter сравнивает отфильтрованную таблицу с исходной
func SummarizeFilter(filtered []models.Incident, originalCount int) FilterSummary {
	summary := FilterSummary{
		Shown:    len(filtered),
		Original: originalCount,
		Years:    []int{},
	}
	if originalCount > 0 {
		summary.ReductionPct = float64(originalCount-len(filtered)) / float64(originalCount) * 100
	}

	regions := make(map[string]struct{})
	years := make(map[int]struct{})
	for i := range filtered {
		if filtered[i].RegionCode != "" {
			regions[filtered[i].RegionCode] = struct{}{}
		}
		if filtered[i].Year != nil {
			years[*filtered[i].Year] = struct{}{}
		}
	}
	summary.RegionsShown = len(regions)
	for y := range years {
		summary.Years = append(summary.Years, y)
	}
	sort.Ints(summary.Years)
	return summary
}

// RegionOption - вариант выбора региона
type RegionOption struct {
	Code string  `json:"code"`
	Name *string `json:"name"`
}

// FilterOptions - допустимые значения фильтров для построения интерфейса
type FilterOptions struct {
	Regions    []RegionOption            `json:"regions"`
	Intents    []string                  `json:"intents"`
	Outcomes   []string                  `json:"outcomes"`
	Years      []int                     `json:"years"`
	Months     []string                  `json:"months"`
	Severities []models.SeverityCategory `json:"severities"`
	Presets    []models.Preset           `json:"presets"`
	DateMin    *time.Time                `json:"date_min"`
	DateMax    *time.Time                `json:"date_max"`
}

var calendarMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// BuildFilterOptions собирает различающиеся значения из обогащенной таблицы
func BuildFilterOptions(incidents []models.Incident, now time.Time) FilterOptions {
	regionNames := make(map[string]*string)
	intents := make(map[string]struct{})
	outcomes := make(map[string]struct{})
	years := make(map[int]struct{})
	months := make(map[string]struct{})

	for i := range incidents {
		inc := &incidents[i]
		if inc.RegionCode != "" {
			regionNames[inc.RegionCode] = inc.RegionName
		}
		if inc.Intent != "" {
			intents[inc.Intent] = struct{}{}
		}
		if inc.Outcome != "" {
			outcomes[inc.Outcome] = struct{}{}
		}
		if inc.Year != nil {
			years[*inc.Year] = struct{}{}
		}
		if inc.MonthAbbrev != nil {
			months[*inc.MonthAbbrev] = struct{}{}
		}
	}

	opts := FilterOptions{
		Regions:    make([]RegionOption, 0, len(regionNames)),
		Intents:    sortedKeys(intents),
		Outcomes:   sortedKeys(outcomes),
		Years:      make([]int, 0, len(years)),
		Months:     make([]string, 0, len(months)),
		Severities: models.SeverityCategories,
		Presets:    models.Presets,
	}
	for code, name := range regionNames {
		opts.Regions = append(opts.Regions, RegionOption{Code: code, Name: name})
	}
	sort.Slice(opts.Regions, func(a, b int) bool {
		return opts.Regions[a].Code < opts.Regions[b].Code
	})
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	// последние годы первыми
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	for _, m := range calendarMonths {
		if _, ok := months[m]; ok {
			opts.Months = append(opts.Months, m)
		}
	}
	opts.DateMin, opts.DateMax = DateBounds(incidents, now)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
