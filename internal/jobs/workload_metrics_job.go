package jobs

import (
	"context"
	"log/slog"

	"workshop/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

const workloadSchedule = "*/15 * * * * *"

type activeOrdersLister interface {
	Handle(ctx context.Context, query queries.ListActiveOrdersQuery) ([]queries.OrderView, error)
}

// WorkloadMetricsJob refreshes the active-orders gauge every 15 seconds.
type WorkloadMetricsJob struct {
	lister activeOrdersLister
	cron   *cron.Cron
	logger *slog.Logger
}

func NewWorkloadMetricsJob(lister activeOrdersLister, logger *slog.Logger) *WorkloadMetricsJob {
	return &WorkloadMetricsJob{
		lister: lister,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "workload_metrics_job"),
	}
}

func (j *WorkloadMetricsJob) Start() error {
	if _, err := j.cron.AddFunc(workloadSchedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Workload metrics job started (running every 15 seconds)")
	return nil
}

func (j *WorkloadMetricsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Workload metrics job stopped")
}

func (j *WorkloadMetricsJob) run() {
	ctx := context.Background()
	views, err := j.lister.Handle(ctx, queries.NewListActiveOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Workload metrics job failed", "error", err)
		return
	}

	counts := make(map[string]int)
	for _, v := range views {
		counts[v.Status.String()]++
	}
	activeOrders.Reset()
	for status, n := range counts {
		activeOrders.WithLabelValues(status).Set(float64(n))
	}
}
