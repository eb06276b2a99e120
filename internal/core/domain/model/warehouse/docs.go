// Package warehouse models the regional warehouse nodes orders are routed to.
//
// The package includes:
//   - Node: one warehouse service instance and its base address
//   - Registry: the immutable set of nodes, keyed by region/node id
//   - SelectionResult: the node chosen for one order and whether it was a fallback
//   - UnknownRegionError and NoAlternateWarehouseError: the selection failures
//
// A Registry is built once at start-up and shared read-only by every
// dispatch run; none of its methods mutate it, so no locking is needed.
package warehouse
