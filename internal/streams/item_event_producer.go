package streams

import (
	"context"
	"errors"
	"strconv"

	"devops-api/internal/events"
	"devops-api/internal/shared/metrics"
)

const (
	codePartitionFull = "STREAM_1000"
	codePublishFailed = "STREAM_9000"
)

// ItemEventProducer publishes item events to a partitioned queue.
//
// The partition key is the item id, so every event of one item goes through the same
// partition and is recorded in the order the mutations happened. Events of different
// items are spread over the partitions and recorded in parallel.
//
//go:generate mockgen -source=item_event_producer.go -destination=./mocks/item_event_producer_mock.go -package=mocks
type ItemEventProducer interface {
	Produce(ctx context.Context, event *events.ItemEvent) error
}

type itemEventProducer struct {
	queue *PartitionedQueue[events.ItemEvent]
}

func NewItemEventProducer(queue *PartitionedQueue[events.ItemEvent]) ItemEventProducer {
	return &itemEventProducer{
		queue: queue,
	}
}

func (producer *itemEventProducer) Produce(ctx context.Context, event *events.ItemEvent) error {
	partitionKey := strconv.FormatInt(event.ItemID, 10)
	if err := producer.queue.Publish(ctx, partitionKey, *event); err != nil {
		code := codePublishFailed
		if errors.Is(err, ErrPartitionFull) {
			code = codePartitionFull
		}
		metricItemEventPublishedTotal.WithLabelValues(streamItemEvents, code).Inc()
		return err
	}
	metricItemEventPublishedTotal.WithLabelValues(streamItemEvents, metrics.ValueNoError).Inc()
	return nil
}
