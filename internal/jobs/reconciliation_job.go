package jobs

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultBatchSize bounds how many stalled orders one run restarts.
const DefaultBatchSize = 100

// StalledOrdersFinder lists orders that never left PENDING_PAYMENT.
type StalledOrdersFinder interface {
	Handle(ctx context.Context, query queries.GetStalledOrdersQuery) ([]fulfillment.Payload, error)
}

// ReconciliationJob restarts fulfillment for orders whose workflow start was lost.
// Engines dedupe by order key, so an order whose execution is still running is not doubled.
type ReconciliationJob struct {
	finder     StalledOrdersFinder
	workflows  ports.WorkflowStarter
	schedule   string
	staleAfter time.Duration
	batchSize  int
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewReconciliationJob creates a job running on the given cron schedule (with seconds field).
func NewReconciliationJob(
	finder StalledOrdersFinder,
	workflows ports.WorkflowStarter,
	schedule string,
	staleAfter time.Duration,
	logger *slog.Logger,
) (*ReconciliationJob, error) {
	if finder == nil {
		return nil, errs.NewValueIsRequiredError("finder")
	}
	if workflows == nil {
		return nil, errs.NewValueIsRequiredError("workflows")
	}
	if schedule == "" {
		return nil, errs.NewValueIsRequiredError("schedule")
	}
	if staleAfter <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("staleAfter", staleAfter, "1ns", "unbounded")
	}

	return &ReconciliationJob{
		finder:     finder,
		workflows:  workflows,
		schedule:   schedule,
		staleAfter: staleAfter,
		batchSize:  DefaultBatchSize,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.With("component", "reconciliation_job"),
	}, nil
}

// Start schedules the job.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation run failed", "error", err)
		}
	})
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("schedule", err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule, "stale_after", j.staleAfter)
	return nil
}

// Stop stops scheduling and waits for a run in progress.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

// RunOnce restarts every stalled order found and reports how many were handed to the engine.
// Stalled orders are read page by page, so orders whose restart keeps failing do not
// hide newer ones. A failed start is logged and skipped; the next run picks it up again.
func (j *ReconciliationJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewGetStalledOrdersQuery(j.staleAfter, j.batchSize)
	if err != nil {
		return 0, err
	}

	restarted := 0
	for {
		stalled, err := j.finder.Handle(ctx, query)
		if err != nil {
			return restarted, err
		}

		for _, payload := range stalled {
			if ctx.Err() != nil {
				return restarted, ctx.Err()
			}
			executionID, err := j.workflows.Start(ctx, payload)
			if err != nil {
				j.logger.WarnContext(ctx, "Restart failed", "order_id", payload.OrderID, "error", err)
				continue
			}
			restarted++
			j.logger.InfoContext(ctx, "Restarted stalled order", "order_id", payload.OrderID, "execution_id", executionID)
		}

		if len(stalled) < j.batchSize {
			return restarted, nil
		}
		if query, err = nextPage(query, stalled[len(stalled)-1]); err != nil {
			return restarted, err
		}
	}
}

func nextPage(query queries.GetStalledOrdersQuery, last fulfillment.Payload) (queries.GetStalledOrdersQuery, error) {
	orderID, err := kernel.UUIDFromString(last.OrderID)
	if err != nil {
		return queries.GetStalledOrdersQuery{}, err
	}
	return query.After(last.OrderedAt, orderID)
}
