package streams

import (
	"context"
	"sync"
	"testing"
	"time"

	activitymocks "devops-api/internal/activity/mocks"
	"devops-api/internal/events"
	"devops-api/internal/shared/loggers"
	"devops-api/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func waitForCalls(t *testing.T, done <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for call %d of %d", i+1, n)
		}
	}
}

func TestItemEventConsumer_RecordsEventsInOrderPerItem(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ItemEvent](4, 16)
	recorder := activitymocks.NewMockActivityRecorder(ctrl)
	logger, _ := loggers.New("error")
	consumer := NewItemEventConsumer(queue, recorder, logger)

	var mu sync.Mutex
	var seen []events.ItemEventType
	done := make(chan struct{}, 3)

	recorder.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *events.ItemEvent) *svcerrors.ServiceError {
			mu.Lock()
			seen = append(seen, event.Type)
			mu.Unlock()
			done <- struct{}{}
			return nil
		}).
		Times(3)

	ctx := context.Background()
	producer := NewItemEventProducer(queue)
	for _, eventType := range []events.ItemEventType{events.ItemCreated, events.ItemUpdated, events.ItemDeleted} {
		require.NoError(t, producer.Produce(ctx, &events.ItemEvent{Type: eventType, ItemID: 9, TraceID: "t"}))
	}

	consumer.Start(ctx)
	waitForCalls(t, done, 3)
	consumer.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []events.ItemEventType{events.ItemCreated, events.ItemUpdated, events.ItemDeleted}, seen)
}

func TestItemEventConsumer_SurvivesRecorderPanicAndError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ItemEvent](1, 16)
	recorder := activitymocks.NewMockActivityRecorder(ctrl)
	logger, _ := loggers.New("error")
	consumer := NewItemEventConsumer(queue, recorder, logger)

	done := make(chan struct{}, 3)
	gomock.InOrder(
		recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *events.ItemEvent) *svcerrors.ServiceError {
				done <- struct{}{}
				panic("recorder exploded")
			}),
		recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *events.ItemEvent) *svcerrors.ServiceError {
				done <- struct{}{}
				return svcerrors.NewInternalError("ACT_9000", assert.AnError)
			}),
		recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *events.ItemEvent) *svcerrors.ServiceError {
				done <- struct{}{}
				return nil
			}),
	)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, queue.Publish(ctx, "1", events.ItemEvent{Type: events.ItemUpdated, ItemID: 1}))
	}

	consumer.Start(ctx)
	waitForCalls(t, done, 3)
	consumer.Stop()
}

func TestItemEventConsumer_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ItemEvent](2, 1)
	recorder := activitymocks.NewMockActivityRecorder(ctrl)
	logger, _ := loggers.New("error")
	consumer := NewItemEventConsumer(queue, recorder, logger)

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)
	cancel()

	stopped := make(chan struct{})
	go func() {
		consumer.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}
