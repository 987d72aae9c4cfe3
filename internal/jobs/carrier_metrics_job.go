package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"shipping/internal/core/application/usecases/queries"
)

// metricsWindow is the trailing period each snapshot covers.
const metricsWindow = 30 * 24 * time.Hour

// CarrierMetricsJob periodically computes carrier performance over the
// trailing thirty days and logs a snapshot. The log stream is the cheap
// operational view; the on-demand metrics routes serve the same numbers for
// arbitrary windows.
type CarrierMetricsJob struct {
	handler queries.CarrierPerformanceQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCarrierMetricsJob creates a job that snapshots carrier performance
// hourly.
func NewCarrierMetricsJob(handler queries.CarrierPerformanceQueryHandler, logger *slog.Logger) *CarrierMetricsJob {
	return &CarrierMetricsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "carrier_metrics_job"),
	}
}

// Start begins the carrier metrics job, running at the top of every hour.
func (j *CarrierMetricsJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Carrier metrics job started (running hourly)")
	return nil
}

// Stop stops the carrier metrics job.
func (j *CarrierMetricsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Carrier metrics job stopped")
}

func (j *CarrierMetricsJob) run() {
	ctx := context.Background()
	now := time.Now()

	query, err := queries.NewCarrierPerformanceQuery(now.Add(-metricsWindow), now)
	if err != nil {
		j.logger.ErrorContext(ctx, "Carrier metrics job failed to build query", "error", err)
		return
	}

	metrics, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Carrier metrics job failed", "error", err)
		return
	}

	for _, metric := range metrics {
		j.logger.InfoContext(ctx, "carrier performance snapshot",
			"carrierId", metric.CarrierID,
			"carrierName", metric.CarrierName,
			"totalShipments", metric.TotalShipments,
			"completedShipments", metric.CompletedShipments,
			"completionRate", metric.CompletionRate,
		)
	}
}
