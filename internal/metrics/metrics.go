package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
)

const namespace = "school_incidents"

// PipelineMetrics публикует метрики конвейера загрузки в собственном реестре Prometheus
type PipelineMetrics struct {
	registry *prometheus.Registry

	cacheRequests *prometheus.CounterVec
	loads         *prometheus.CounterVec
	loadDuration  prometheus.Histogram
	rows          prometheus.Gauge
	completeness  prometheus.Gauge
	freshnessDays prometheus.Gauge
}

var _ service.PipelineMetrics = (*PipelineMetrics)(nil)

// NewPipelineMetrics создает и регистрирует метрики
func NewPipelineMetrics() *PipelineMetrics {
	m := &PipelineMetrics{
		registry: prometheus.NewRegistry(),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_cache_requests_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset load cycles by status and failure reason.",
		}, []string{"status", "reason"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of successful dataset loads.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the most recent dataset after cleaning.",
		}),
		completeness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_completeness_score",
			Help:      "Completeness score of the most recent dataset, 0-100.",
		}),
		freshnessDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_freshness_days",
			Help:      "Days between the latest incident and the load time.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cacheRequests,
		m.loads,
		m.loadDuration,
		m.rows,
		m.completeness,
		m.freshnessDays,
	)
	return m
}

func (m *PipelineMetrics) CacheHit() {
	m.cacheRequests.WithLabelValues("hit").Inc()
}

func (m *PipelineMetrics) CacheMiss() {
	m.cacheRequests.WithLabelValues("miss").Inc()
}

func (m *PipelineMetrics) LoadSucceeded(duration time.Duration, quality models.QualityMetrics) {
	m.loads.WithLabelValues("success", "").Inc()
	m.loadDuration.Observe(duration.Seconds())
	m.rows.Set(float64(quality.FinalRows))
	m.completeness.Set(quality.CompletenessScore)
	if quality.DataFreshnessDays != nil {
		m.freshnessDays.Set(float64(*quality.DataFreshnessDays))
	}
}

func (m *PipelineMetrics) LoadFailed(reason string) {
	m.loads.WithLabelValues("failure", reason).Inc()
}

// Registry возвращает реестр, например для тестов
func (m *PipelineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдает метрики в текстовом формате Prometheus
func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
