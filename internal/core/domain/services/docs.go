// Package services provides the domain services of the dispatch pipeline.
//
// The package includes:
//   - WarehouseSelector: picks the warehouse for an order, failing over to a
//     random alternate when the region-natural node is unhealthy
//   - OrderSubmitter: sends an order to a warehouse and classifies the answer
//     into success, duplicate rejection or transient failure
//   - Randomizer: the injectable source of randomness used for fallback
//
// Neither service retries. Retrying is the orchestrator's decision, made on
// the error kind the application layer attaches to each failure.
package services
