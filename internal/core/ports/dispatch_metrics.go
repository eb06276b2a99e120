package ports

import (
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/submission"
)

// DispatchMetrics receives pipeline observations.
type DispatchMetrics interface {
	// ObserveRun counts a run reaching a final status.
	ObserveRun(status dispatch.Status)

	// ObserveHealthProbeFailure counts a failed probe of nodeID.
	ObserveHealthProbeFailure(nodeID string)

	// ObserveFallback counts an order of region routed away from its natural node.
	ObserveFallback(region string)

	// ObserveSubmission counts one submission attempt against nodeID.
	ObserveSubmission(nodeID string, kind submission.Kind)
}
