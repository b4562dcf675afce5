// Package jobs provides scheduled background tasks for the workshop service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds enabled):
//
//  1. OutboxRelayJob publishes pending outbox messages to Kafka on the
//     OUTBOX_RELAY_SCHEDULE cron expression. Overlapping runs are skipped.
//  2. WorkloadMetricsJob refreshes the workshop_active_orders gauge every 15 seconds.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, relayConfig, activeOrdersHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay run is logged and counted; the unpublished messages stay in the
// outbox and are retried on the next tick. Failed job starts stop any already
// running jobs.
package jobs
