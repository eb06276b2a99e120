// Package order provides the Order value that flows through the dispatch pipeline.
//
// The package includes:
//   - Order: an immutable customer order identified by its order id
//   - ValidationError: the structural validation failure raised at ingestion
//
// Key business rules:
//   - order_id, customer_name and region are required
//   - order_id never changes once the order exists; it is the only key
//     warehouses use to detect duplicate submissions
//   - Orders are created only through NewOrder
package order
