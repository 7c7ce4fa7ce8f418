// Package fulfillment models the order fulfillment workflow: its execution states,
// the payment charge outcome, the per-step retry policy and the payloads exchanged
// between the workflow engine and its steps.
//
// The workflow runs one execution per order:
//
//	Charging ──> Updating ──> Notifying ──> Completed
//	   │  ↺ retry   │             │
//	   └────────────┴─────────────┴──> Failed
//
// Only execution failures move an execution to Failed. A declined charge is a
// ChargeOutcome, carried forward to Updating like an approved one.
package fulfillment
