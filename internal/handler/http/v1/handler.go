package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/school_gunfire_dashboard/internal/config"
	"github.com/shenikar/school_gunfire_dashboard/internal/exporter"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	now             func() time.Time
}

func NewHandler(incidentService service.IncidentService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		now:             time.Now,
	}
}

// @Summary Get filtered incidents
// @Description Get enriched incidents matching the filter. Multi-value parameters may repeat or be comma-separated.
// @Tags Incidents
// @Produce json
// @Param preset query string false "Filter preset" Enums(all, last_year_complete, last_5_years, fatal_only, mass_casualties, current_year)
// @Param region query []string false "Region codes or names"
// @Param intent query []string false "Intent values"
// @Param outcome query []string false "Outcome values"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param min_casualties query int false "Minimum total casualties"
// @Param min_severity query string false "Minimum severity category"
// @Param year query []int false "Years"
// @Param month query []string false "Month abbreviations"
// @Param fatal_only query bool false "Only incidents with fatalities"
// @Param top_regions query int false "Keep only the N regions with most incidents"
// @Success 200 {object} IncidentListResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	criteria, ok := h.bindCriteria(c, log)
	if !ok {
		return
	}

	view, err := h.incidentService.ListIncidents(c.Request.Context(), criteria)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ViewToListResponse(view))
}

// @Summary Export filtered incidents
// @Description Download the filtered incidents as CSV or XLSX. Accepts the same filter parameters as GET /incidents.
// @Tags Incidents
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid filter or format"
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /incidents/export [get]
func (h *Handler) exportIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "exportIncidents")

	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format := q.Format
	if format == "" {
		format = exporter.FormatCSV
	}

	criteria, ok := h.bindCriteria(c, log)
	if !ok {
		return
	}

	view, err := h.incidentService.ListIncidents(c.Request.Context(), criteria)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Write(&buf, format, view.Incidents); err != nil {
		log.WithError(err).Error("Failed to export incidents")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName(format, h.now())))
	c.Data(http.StatusOK, exporter.ContentType(format), buf.Bytes())
}

// @Summary Get summary statistics
// @Description Get summary, temporal, geographic, severity and pattern statistics over the filtered incidents. Accepts the same filter parameters as GET /incidents.
// @Tags Statistics
// @Produce json
// @Success 200 {object} service.StatisticalSummary
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /incidents/summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	log := h.logger.WithField("method", "getSummary")

	criteria, ok := h.bindCriteria(c, log)
	if !ok {
		return
	}

	summary, err := h.incidentService.GetSummary(c.Request.Context(), criteria)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Get rolling statistics
// @Description Get a daily series with rolling sums over the window and the 30-day change rate. Accepts the same filter parameters as GET /incidents.
// @Tags Statistics
// @Produce json
// @Param window_days query int false "Rolling window in days" default(365)
// @Success 200 {object} RollingResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /incidents/rolling [get]
func (h *Handler) getRolling(c *gin.Context) {
	log := h.logger.WithField("method", "getRolling")

	var q RollingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	window := q.WindowDays
	if window == 0 {
		window = service.DefaultRollingWindowDays
	}

	criteria, ok := h.bindCriteria(c, log)
	if !ok {
		return
	}

	points, err := h.incidentService.GetRollingStatistics(c.Request.Context(), criteria, window)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, RollingResponse{WindowDays: window, Points: points})
}

// @Summary Get filter options
// @Description Get the distinct selectable values and default date bounds of the current dataset
// @Tags Filters
// @Produce json
// @Success 200 {object} service.FilterOptions
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /filters/options [get]
func (h *Handler) getFilterOptions(c *gin.Context) {
	log := h.logger.WithField("method", "getFilterOptions")

	opts, err := h.incidentService.GetFilterOptions(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// @Summary Get data quality
// @Description Get completeness metrics and quality level of the current dataset
// @Tags Dataset
// @Produce json
// @Success 200 {object} QualityResponse
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /quality [get]
func (h *Handler) getQuality(c *gin.Context) {
	log := h.logger.WithField("method", "getQuality")

	report, err := h.incidentService.GetQuality(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ReportToQualityResponse(report))
}

// @Summary Refresh dataset
// @Description Invalidate the cache and reload the dataset from the source. Requires API key.
// @Tags Dataset
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} QualityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Source data could not be parsed"
// @Failure 503 {object} map[string]string "Source data unavailable"
// @Router /dataset/refresh [post]
func (h *Handler) refreshDataset(c *gin.Context) {
	log := h.logger.WithField("method", "refreshDataset")

	report, err := h.incidentService.RefreshDataset(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ReportToQualityResponse(report))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindCriteria разбирает и валидирует параметры фильтра; при ошибке уже ответил 400
func (h *Handler) bindCriteria(c *gin.Context, log *logrus.Entry) (models.FilterCriteria, bool) {
	var q IncidentFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return models.FilterCriteria{}, false
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.FilterCriteria{}, false
	}
	criteria, err := QueryToCriteria(q)
	if err != nil {
		log.WithError(err).Warn("Invalid filter")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.FilterCriteria{}, false
	}
	return criteria, true
}

// respondError переводит ошибку сервиса в HTTP-ответ
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var fetchErr *models.DataFetchError
	var parseErr *models.DataParseError
	switch {
	case errors.Is(err, service.ErrInvalidFilter):
		log.WithError(err).Warn("Invalid filter")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &fetchErr):
		log.WithError(err).Error("Source data unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "incident data source is currently unavailable, please try again later"})
	case errors.As(err, &parseErr):
		log.WithError(err).Error("Source data could not be parsed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "incident data source returned data in an unexpected format"})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
