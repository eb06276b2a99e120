// Package submission models the outcome of sending one order to one warehouse.
//
// An Outcome is a tagged variant:
//   - Success: the warehouse stored the order; carries the response payload
//   - DuplicateRejected: the warehouse already holds the order id; final
//   - TransientFailure: timeout, connection failure or a non-duplicate error
//     response; the orchestrator may retry
package submission
