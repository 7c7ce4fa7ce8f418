package temporal

import (
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// NewWorker registers the order workflow and its activities on taskQueue.
// The caller starts and stops the returned worker.
func NewWorker(c client.Client, taskQueue string, wf *Workflow, activities *Activities) worker.Worker {
	w := worker.New(c, taskQueue, worker.Options{})

	w.RegisterWorkflowWithOptions(wf.Run, workflow.RegisterOptions{Name: WorkflowName})
	w.RegisterActivity(activities)

	return w
}
