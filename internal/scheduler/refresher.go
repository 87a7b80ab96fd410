package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
	"github.com/sirupsen/logrus"
)

// Refresher периодически перезагружает таблицу по cron-расписанию
type Refresher struct {
	cron     *cron.Cron
	datasets service.DatasetProvider
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewRefresher создает планировщик. schedule - стандартное выражение cron из пяти полей
// или дескриптор вида "@every 6h".
func NewRefresher(schedule string, datasets service.DatasetProvider, logger *logrus.Logger, timeout time.Duration) (*Refresher, error) {
	r := &Refresher{
		cron:     cron.New(),
		datasets: datasets,
		logger:   logger,
		timeout:  timeout,
	}
	if _, err := r.cron.AddFunc(schedule, r.Run); err != nil {
		return nil, fmt.Errorf("scheduler: invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start запускает расписание в фоне
func (r *Refresher) Start() {
	r.logger.Info("Starting dataset refresh scheduler...")
	r.cron.Start()
}

// Stop останавливает расписание и ждет завершения текущего запуска
func (r *Refresher) Stop(ctx context.Context) {
	r.logger.Info("Stopping dataset refresh scheduler.")
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run выполняет одну перезагрузку
func (r *Refresher) Run() {
	log := r.logger.WithFields(logrus.Fields{
		"service": "scheduler",
		"method":  "Run",
	})
	log.Info("CronJob: dataset refresh running")

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	dataset, err := r.datasets.Refresh(ctx)
	if err != nil {
		log.WithError(err).Error("Scheduled dataset refresh failed")
		return
	}
	log.WithFields(logrus.Fields{
		"load_id": dataset.LoadID,
		"rows":    len(dataset.Incidents),
	}).Info("Scheduled dataset refresh completed")
}
