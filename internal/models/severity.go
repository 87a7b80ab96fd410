package models

import (
	"fmt"
	"strings"
)

// SeverityCategory - одна из пяти взаимоисключающих категорий тяжести инцидента
type SeverityCategory string

const (
	SeverityNoCasualties       SeverityCategory = "No Casualties"
	SeverityInjuriesOnly       SeverityCategory = "Injuries Only"
	SeveritySingleFatality     SeverityCategory = "Single Fatality"
	SeverityMultipleCasualties SeverityCategory = "Multiple Casualties"
	SeverityMassCasualty       SeverityCategory = "Mass Casualty"
)

// DefaultMassCasualtyThreshold - порог массового инцидента (убитые + раненые)
const DefaultMassCasualtyThreshold = 4

// SeverityCategories перечисляет категории от наименее к наиболее тяжелой
var SeverityCategories = []SeverityCategory{
	SeverityNoCasualties,
	SeverityInjuriesOnly,
	SeveritySingleFatality,
	SeverityMultipleCasualties,
	SeverityMassCasualty,
}

// Rank возвращает порядковый номер категории, -1 для неизвестной
func (s SeverityCategory) Rank() int {
	for i, c := range SeverityCategories {
		if c == s {
			return i
		}
	}
	return -1
}

// ParseSeverityCategory разбирает категорию по названию ("Mass Casualty") или по slug ("mass_casualty")
func ParseSeverityCategory(value string) (SeverityCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	for _, c := range SeverityCategories {
		if strings.ToLower(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown severity category %q", value)
}

// Classifier классифицирует инциденты по числу убитых и раненых.
// Порог массового инцидента настраивается.
type Classifier struct {
	MassCasualtyThreshold int
}

// NewClassifier создает классификатор; порог < 1 заменяется значением по умолчанию
func NewClassifier(threshold int) Classifier {
	if threshold < 1 {
		threshold = DefaultMassCasualtyThreshold
	}
	return Classifier{MassCasualtyThreshold: threshold}
}

// Classify применяет правила по порядку, срабатывает первое подходящее
func (c Classifier) Classify(killed, wounded int) SeverityCategory {
	total := killed + wounded
	switch {
	case total == 0:
		return SeverityNoCasualties
	case killed == 0:
		return SeverityInjuriesOnly
	case killed == 1 && wounded == 0:
		return SeveritySingleFatality
	case c.IsMassCasualty(total):
		return SeverityMassCasualty
	default:
		return SeverityMultipleCasualties
	}
}

// IsMassCasualty сообщает, достигает ли число пострадавших порога
func (c Classifier) IsMassCasualty(total int) bool {
	threshold := c.MassCasualtyThreshold
	if threshold < 1 {
		threshold = DefaultMassCasualtyThreshold
	}
	return total >= threshold
}
