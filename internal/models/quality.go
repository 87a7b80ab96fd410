package models

import "math"

// QualityMetrics - диагностика полноты данных одного цикла загрузки.
// На фильтрацию не влияет, только показывается пользователю.
type QualityMetrics struct {
	InitialRows           int     `json:"initial_rows"`
	FinalRows             int     `json:"final_rows"`
	MissingDates          int     `json:"missing_dates"`
	MissingCoords         int     `json:"missing_coords"`
	MissingNarratives     int     `json:"missing_narratives"`
	DuplicateIncidents    int     `json:"duplicate_incidents"`
	InvalidCasualtyCounts int     `json:"invalid_casualty_counts"`
	DroppedGeoInvalid     int     `json:"dropped_geo_invalid"`
	DataFreshnessDays     *int    `json:"data_freshness_days"`
	LoadTimeSeconds       float64 `json:"load_time_seconds"`
	CompletenessScore     float64 `json:"completeness_score"`
}

// CompletenessScore считает процент заполненности критичных полей (даты, координаты, описания),
// округленный до одного знака. Для пустого источника возвращает 100.
func CompletenessScore(m QualityMetrics) float64 {
	if m.InitialRows <= 0 {
		return 100
	}
	missing := float64(m.MissingDates + m.MissingCoords + m.MissingNarratives)
	score := (1 - missing/float64(m.InitialRows*3)) * 100
	score = math.Round(score*10) / 10
	return math.Max(0, math.Min(100, score))
}

// QualityLevel переводит оценку полноты в текстовый уровень
func QualityLevel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	default:
		return "Limited"
	}
}
