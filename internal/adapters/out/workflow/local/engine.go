// Package local runs fulfillment executions inside the service process.
//
// Each accepted order gets one goroutine driving workflow.Machine. At most one
// execution per order runs at a time and the number of concurrent executions is
// bounded. Executions do not survive a restart; the reconciliation job restarts
// orders left in PENDING_PAYMENT.
package local

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"orders/internal/core/application/workflow"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

const DefaultMaxConcurrency = 64

var ErrEngineStopped = errors.New("workflow engine is shutting down")

type Option func(*Engine)

// WithOnFinished registers a callback invoked with every finished execution.
func WithOnFinished(fn func(workflow.Execution)) Option {
	return func(e *Engine) {
		e.onFinished = fn
	}
}

type Engine struct {
	machine *workflow.Machine
	slots   *semaphore.Weighted
	logger  *slog.Logger

	onFinished func(workflow.Execution)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running map[string]struct{}
	stopped bool
}

func NewEngine(machine *workflow.Machine, maxConcurrency int64, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if machine == nil {
		return nil, errs.NewValueIsRequiredError("machine")
	}
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		machine: machine,
		slots:   semaphore.NewWeighted(maxConcurrency),
		logger:  logger.With("component", "local-workflow-engine"),
		ctx:     ctx,
		cancel:  cancel,
		running: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Start schedules an execution and returns without waiting for it.
// A start for an order whose execution is still running returns the running
// execution's id.
func (e *Engine) Start(ctx context.Context, payload fulfillment.Payload) (string, error) {
	key, err := payload.Key()
	if err != nil {
		return "", err
	}
	id := workflow.ExecutionID(key)

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return "", ErrEngineStopped
	}
	if _, ok := e.running[id]; ok {
		e.mu.Unlock()
		e.logger.InfoContext(ctx, "execution already running", "execution_id", id)
		return id, nil
	}
	e.running[id] = struct{}{}
	e.wg.Add(1)
	e.mu.Unlock()

	runCtx := trace.ContextWithSpanContext(e.ctx, trace.SpanContextFromContext(ctx))
	go e.run(runCtx, id, payload)

	e.logger.InfoContext(ctx, "execution started", "execution_id", id)
	return id, nil
}

func (e *Engine) run(ctx context.Context, id string, payload fulfillment.Payload) {
	defer e.wg.Done()
	defer func() {
		e.mu.Lock()
		delete(e.running, id)
		e.mu.Unlock()
	}()

	var exec workflow.Execution
	if err := e.slots.Acquire(ctx, 1); err != nil {
		key, _ := payload.Key()
		exec = workflow.Execution{Key: key, State: fulfillment.Failed, Err: err}
		e.logger.WarnContext(context.WithoutCancel(ctx), "execution abandoned before start", "execution_id", id, "error", err)
	} else {
		exec = e.machine.Run(ctx, payload)
		e.slots.Release(1)
	}

	if e.onFinished != nil {
		e.onFinished(exec)
	}
}

// Running reports how many executions have been started and not finished.
func (e *Engine) Running() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.running)
}

// Shutdown stops accepting executions and waits for running ones.
// When ctx ends first, running executions are canceled and Shutdown returns ctx.Err().
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.stopped = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.cancel()
		return nil
	case <-ctx.Done():
		e.cancel()
		<-done
		return ctx.Err()
	}
}
