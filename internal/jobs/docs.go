// Package jobs provides scheduled background tasks for the orders service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field, so a
// schedule like "*/30 * * * * *" runs every thirty seconds.
//
// # Available Jobs
//
// ReconciliationJob finds orders that stayed in PENDING_PAYMENT longer than a
// threshold (their workflow start was lost) and starts fulfillment for them again.
//
// # Usage
//
//	job, err := jobs.NewReconciliationJob(stalledOrders, workflows, "*/30 * * * * *", time.Minute, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager := jobs.NewJobManager()
//	manager.Register("reconciliation", job)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. A failed restart of one
// order does not stop the rest of the batch. Overlapping runs are skipped.
package jobs
