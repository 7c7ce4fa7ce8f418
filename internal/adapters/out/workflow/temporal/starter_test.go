package temporal_test

import (
	"errors"
	"testing"

	"orders/internal/adapters/out/workflow/temporal"
	orderflow "orders/internal/core/application/workflow"
	"orders/internal/core/domain/model/fulfillment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
)

func TestStarter_Start(t *testing.T) {
	payload := newPayload(t, "100")
	key, err := payload.Key()
	require.NoError(t, err)
	id := orderflow.ExecutionID(key)

	run := new(mocks.WorkflowRun)
	run.On("GetID").Return(id)
	run.On("GetRunID").Return("run-1")
	c := new(mocks.Client)
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.ID == id &&
			o.TaskQueue == "orders" &&
			o.WorkflowIDConflictPolicy == enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING
	}), temporal.WorkflowName, payload).Return(run, nil).Once()

	starter, err := temporal.NewStarter(c, "orders", nil)
	require.NoError(t, err)

	got, err := starter.Start(t.Context(), payload)

	require.NoError(t, err)
	assert.Equal(t, id, got)
	c.AssertExpectations(t)
}

func TestStarter_Start_CompletedExecutionIsNotAnError(t *testing.T) {
	payload := newPayload(t, "100")
	c := new(mocks.Client)
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, temporal.WorkflowName, payload).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-0")).Once()

	starter, err := temporal.NewStarter(c, "orders", nil)
	require.NoError(t, err)

	id, err := starter.Start(t.Context(), payload)

	require.NoError(t, err)
	assert.Contains(t, id, payload.OrderID)
}

func TestStarter_Start_Failure(t *testing.T) {
	payload := newPayload(t, "100")
	c := new(mocks.Client)
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, temporal.WorkflowName, payload).
		Return(nil, errors.New("frontend unavailable")).Once()

	starter, err := temporal.NewStarter(c, "orders", nil)
	require.NoError(t, err)

	_, err = starter.Start(t.Context(), payload)

	require.ErrorContains(t, err, "frontend unavailable")
}

func TestStarter_Start_InvalidPayload(t *testing.T) {
	c := new(mocks.Client)
	starter, err := temporal.NewStarter(c, "orders", nil)
	require.NoError(t, err)

	_, err = starter.Start(t.Context(), fulfillment.Payload{TenantID: "tenant-1", OrderID: "nope"})

	require.Error(t, err)
	c.AssertNotCalled(t, "ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewStarter_RequiresSettings(t *testing.T) {
	_, err := temporal.NewStarter(nil, "orders", nil)
	require.Error(t, err)

	_, err = temporal.NewStarter(new(mocks.Client), "", nil)
	require.Error(t, err)
}
