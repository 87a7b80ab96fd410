package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
)

var monthNames = map[string]struct{}{
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "may": {}, "jun": {},
	"jul": {}, "aug": {}, "sep": {}, "oct": {}, "nov": {}, "dec": {},
}

// QueryToCriteria преобразует провалидированный DTO в критерии фильтрации
func QueryToCriteria(q IncidentFilterQuery) (models.FilterCriteria, error) {
	preset, err := models.ParsePreset(q.Preset)
	if err != nil {
		return models.FilterCriteria{}, err
	}

	criteria := models.FilterCriteria{
		Preset:        preset,
		Regions:       splitValues(q.Regions),
		Intents:       splitValues(q.Intents),
		Outcomes:      splitValues(q.Outcomes),
		MinCasualties: q.MinCasualties,
		Years:         q.Years,
		FatalOnly:     q.FatalOnly,
		TopRegions:    q.TopRegions,
	}

	if q.MinSeverity != "" {
		severity, err := models.ParseSeverityCategory(q.MinSeverity)
		if err != nil {
			return models.FilterCriteria{}, err
		}
		criteria.MinSeverity = severity
	}

	for _, m := range splitValues(q.Months) {
		key := strings.ToLower(m)
		if len(key) > 3 {
			key = key[:3]
		}
		if _, ok := monthNames[key]; !ok {
			return models.FilterCriteria{}, fmt.Errorf("unknown month %q", m)
		}
		criteria.Months = append(criteria.Months, m)
	}

	if q.DateFrom != "" || q.DateTo != "" {
		criteria.DateRange = &models.DateRange{}
		if q.DateFrom != "" {
			from, err := time.Parse(models.DateLayout, q.DateFrom)
			if err != nil {
				return models.FilterCriteria{}, fmt.Errorf("invalid date_from: %w", err)
			}
			criteria.DateRange.From = &from
		}
		if q.DateTo != "" {
			to, err := time.Parse(models.DateLayout, q.DateTo)
			if err != nil {
				return models.FilterCriteria{}, fmt.Errorf("invalid date_to: %w", err)
			}
			criteria.DateRange.To = &to
		}
	}
	return criteria, nil
}

// splitValues раскрывает значения через запятую и отбрасывает пустые
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	var date *string
	if model.IncidentDate != nil {
		d := model.IncidentDate.Format(models.DateLayout)
		date = &d
	}
	return &IncidentResponse{
		SourceID:                  model.SourceID,
		IncidentDate:              date,
		RegionCode:                model.RegionCode,
		RegionName:                model.RegionName,
		City:                      model.City,
		Latitude:                  model.Latitude,
		Longitude:                 model.Longitude,
		SchoolName:                model.SchoolName,
		NumberKilled:              model.NumberKilled,
		NumberWounded:             model.NumberWounded,
		Intent:                    model.Intent,
		Outcome:                   model.Outcome,
		Narrative:                 model.Narrative,
		Year:                      model.Year,
		MonthAbbrev:               model.MonthAbbrev,
		DayOfWeekAbbrev:           model.DayOfWeekAbbrev,
		MonthNumber:               model.MonthNumber,
		DayOfWeekNumber:           model.DayOfWeekNumber,
		Quarter:                   model.Quarter,
		AcademicYear:              model.AcademicYear,
		DaysSinceIncident:         model.DaysSinceIncident,
		TotalCasualties:           model.TotalCasualties,
		IsFatal:                   model.IsFatal,
		IsMassCasualty:            model.IsMassCasualty,
		SeverityCategory:          string(model.Severity),
		DaysSincePreviousInRegion: model.DaysSincePreviousInRegion,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i := range incidents {
		responses[i] = ModelToIncidentResponse(&incidents[i])
	}
	return responses
}

// ViewToListResponse преобразует результат фильтрации в DTO
func ViewToListResponse(view *service.IncidentView) *IncidentListResponse {
	return &IncidentListResponse{
		LoadID:    view.LoadID,
		LoadedAt:  view.LoadedAt,
		Filter:    view.Filter,
		Incidents: ModelsToIncidentResponses(view.Incidents),
	}
}

// ReportToQualityResponse преобразует отчет о качестве в DTO
func ReportToQualityResponse(report *service.QualityReport) *QualityResponse {
	resp := &QualityResponse{
		LoadID:   report.LoadID,
		LoadedAt: report.LoadedAt,
		Metrics:  report.Metrics,
		Level:    report.Level,
	}
	if report.LatestIncident != nil {
		resp.LatestIncident = ModelToIncidentResponse(report.LatestIncident)
	}
	return resp
}
