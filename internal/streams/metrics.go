package streams

import (
	"devops-api/internal/shared/metrics"
)

var (
	streamItemEvents = "item_events"

	metricItemEventPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "item_event_published_total",
			Help:      "Item events published to the in-process queue, labeled by publish error code.",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricItemEventConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "item_event_consumed_total",
			Help:      "Item events consumed from the in-process queue, labeled by processing error code.",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
