package activity

import (
	"devops-api/internal/shared/metrics"
)

var (
	// metricItemEventsTotal counts recorded item mutations by event type
	// (item_created, item_updated, item_deleted).
	metricItemEventsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubItems,
			Name:      "events_total",
			Help:      "Item mutations recorded, labeled by event type.",
		},
		[]string{"event_type"},
	)

	// metricItemsLive tracks created minus deleted items. It trails the store by the
	// queue latency.
	metricItemsLive = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubItems,
			Name:      "live",
			Help:      "Items currently stored, derived from item events.",
		},
	)
)
