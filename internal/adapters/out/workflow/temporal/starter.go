package temporal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	orderflow "orders/internal/core/application/workflow"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
)

// Dial connects to the Temporal frontend, logging through logger.
func Dial(hostPort, namespace string, logger *slog.Logger) (client.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c, err := client.Dial(client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
		Logger:    tlog.NewStructuredLogger(logger.With("component", "temporal")),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to temporal at %s: %w", hostPort, err)
	}
	return c, nil
}

// Starter starts order executions on a Temporal task queue.
type Starter struct {
	client    client.Client
	taskQueue string
	logger    *slog.Logger
}

func NewStarter(c client.Client, taskQueue string, logger *slog.Logger) (*Starter, error) {
	if c == nil {
		return nil, errs.NewValueIsRequiredError("temporal client")
	}
	if taskQueue == "" {
		return nil, errs.NewValueIsRequiredError("TEMPORAL_TASK_QUEUE")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Starter{
		client:    c,
		taskQueue: taskQueue,
		logger:    logger.With("component", "temporal-starter"),
	}, nil
}

// Start attaches to a running execution of the same order instead of starting
// another one. A previous execution that failed may be started again; one that
// completed is reported as already started.
func (s *Starter) Start(ctx context.Context, payload fulfillment.Payload) (string, error) {
	key, err := payload.Key()
	if err != nil {
		return "", err
	}
	id := orderflow.ExecutionID(key)

	run, err := s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                       id,
		TaskQueue:                s.taskQueue,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}, WorkflowName, payload)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			s.logger.InfoContext(ctx, "execution already exists", "execution_id", id)
			return id, nil
		}
		return "", fmt.Errorf("start workflow %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "execution started", "execution_id", run.GetID(), "run_id", run.GetRunID())
	return run.GetID(), nil
}
