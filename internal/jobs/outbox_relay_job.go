package jobs

import (
	"context"
	"log/slog"

	"workshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayConfig controls how often and how much the relay publishes.
type OutboxRelayConfig struct {
	Schedule  string
	BatchSize int
	Topic     string
}

// OutboxRelayJob publishes pending outbox messages to Kafka on a cron schedule.
// A run that is still busy when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	relayer outboxRelayer
	config  OutboxRelayConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOutboxRelayJob(relayer outboxRelayer, config OutboxRelayConfig, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		relayer: relayer,
		config:  config,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.config.Schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started",
		"schedule", j.config.Schedule, "batch_size", j.config.BatchSize, "topic", j.config.Topic)
	return nil
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run() {
	ctx := context.Background()
	cmd, err := commands.NewRelayOutboxCommand(j.config.BatchSize, j.config.Topic)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay misconfigured", "error", err)
		return
	}

	published, err := j.relayer.Handle(ctx, cmd)
	outboxRelayed.Add(float64(published))
	if err != nil {
		outboxRelayErrors.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay failed", "published", published, "error", err)
		return
	}
	if published > 0 {
		j.logger.InfoContext(ctx, "Outbox events published", "count", published)
	}
}
