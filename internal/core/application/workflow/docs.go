// Package workflow holds the order fulfillment steps and the state machine that
// sequences them. Engines (in-process or Temporal) drive the same Steps, so the
// retry and failure policy is identical whichever engine runs an execution.
package workflow
