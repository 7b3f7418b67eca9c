package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"devops-api/internal/activity"
	"devops-api/internal/events"
	"devops-api/internal/shared/loggers"
	"devops-api/internal/shared/metrics"
	"devops-api/internal/shared/svcerrors"
)

// ItemEventConsumer drains the item event queue into the activity recorder.
type ItemEventConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type itemEventConsumer struct {
	queue            *PartitionedQueue[events.ItemEvent]
	activityRecorder activity.ActivityRecorder

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewItemEventConsumer(queue *PartitionedQueue[events.ItemEvent], activityRecorder activity.ActivityRecorder, logger loggers.Logger) ItemEventConsumer {
	return &itemEventConsumer{
		queue:            queue,
		activityRecorder: activityRecorder,
		stopCh:           make(chan struct{}),
		logger:           logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-reader lane for the item ids routed to it by the producer.
func (consumer *itemEventConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex // per-iteration copy (Go <1.22 loop semantics)
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *itemEventConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *itemEventConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.ItemEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.handle(ctx, partitionIndex, &event)
		}
	}
}

func (consumer *itemEventConsumer) handle(ctx context.Context, partitionIndex int, event *events.ItemEvent) {
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionID, strconv.Itoa(partitionIndex)).
		Str(loggers.FieldTraceID, event.TraceID).
		Logger().WithContext(ctx)

	// A panicking recorder must not take the worker down.
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("consumer panic recovered: %v", r)

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricItemEventConsumedTotal.WithLabelValues(streamItemEvents, svcErr.Code).Inc()
		}
	}()

	svcError := consumer.activityRecorder.Record(ctx, event)
	if svcError != nil {
		loggers.Ctx(ctx).Error().
			Err(svcError.Cause).
			Str(loggers.FieldErrorCode, svcError.Code).
			Str(loggers.FieldEventID, event.EventID).
			Msg("failed to record item event")
		metricItemEventConsumedTotal.WithLabelValues(streamItemEvents, svcError.Code).Inc()
		return
	}
	metricItemEventConsumedTotal.WithLabelValues(streamItemEvents, metrics.ValueNoError).Inc()
}
