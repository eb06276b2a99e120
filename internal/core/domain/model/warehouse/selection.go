package warehouse

// SelectionResult is the node chosen for one order. It is produced once per
// order by the selector and consumed once by the submitter.
type SelectionResult struct {
	// Node is the warehouse the order will be submitted to.
	Node Node

	// WasFallback is true when the region-natural node failed its health probe
	// and Node is an alternate.
	WasFallback bool

	// Natural is the region-natural node that was probed.
	Natural Node

	// ProbeError is the health probe failure that caused the fallback, nil otherwise.
	ProbeError error
}
