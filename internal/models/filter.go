package models

import (
	"fmt"
	"strings"
	"time"
)

// Preset - быстрые наборы фильтров дашборда
type Preset string

const (
	PresetAll              Preset = "all"
	PresetLastYearComplete Preset = "last_year_complete"
	PresetLastFiveYears    Preset = "last_5_years"
	PresetFatalOnly        Preset = "fatal_only"
	PresetMassCasualties   Preset = "mass_casualties"
	PresetCurrentYear      Preset = "current_year"
)

// Presets перечисляет поддерживаемые пресеты в порядке отображения
var Presets = []Preset{
	PresetAll,
	PresetLastYearComplete,
	PresetLastFiveYears,
	PresetFatalOnly,
	PresetMassCasualties,
	PresetCurrentYear,
}

// ParsePreset разбирает имя пресета, пустая строка означает PresetAll
func ParsePreset(value string) (Preset, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return PresetAll, nil
	}
	for _, p := range Presets {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", value)
}

// DateRange - включительный диапазон дат; незаданная граница берется из данных
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// FilterCriteria - выбор пользователя. Между измерениями действует AND,
// внутри множественного выбора одного измерения - OR. Пустое измерение не ограничивает.
type FilterCriteria struct {
	Preset        Preset
	Regions       []string
	Intents       []string
	Outcomes      []string
	DateRange     *DateRange
	MinCasualties *int
	MinSeverity   SeverityCategory
	Years         []int
	Months        []string
	FatalOnly     bool
	TopRegions    int
}
