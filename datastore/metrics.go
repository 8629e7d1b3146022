package datastore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BatchAssignSkipped counts batch signature targets that were not applied,
// labelled by reason (blank, unknown_asset, error).
var BatchAssignSkipped = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signature_batch_assign_skipped_total",
		Help: "Batch signature assignment targets that were skipped.",
	},
	[]string{"reason"},
)
