// Package queries contains read-only operations over dispatch runs.
// Handlers read straight from the database into response views and never
// load aggregates.
package queries
