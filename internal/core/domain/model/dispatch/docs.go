// Package dispatch provides the dispatch run aggregate: the record of one
// order instance travelling through the ingest, select and submit stages.
//
// The package includes:
//   - Run: the aggregate root tracking status, chosen warehouse and attempts
//   - Status: the run state machine
//   - Kind and Error: the failure taxonomy the orchestrator uses to decide
//     between retrying a stage and ending the run
//
// State transitions:
//
//	Received ──> Validated ──> WarehouseAssigned ──┬──> Submitted
//	   │             │                │            ├──> DuplicateRejected
//	   │             │                │            └──> Failed
//	   └─────────────┴────────────────┴──> Aborted
//
// Failed is reserved for an exhausted retry budget; Aborted ends a run on a
// non-retriable engineering or configuration error.
package dispatch
