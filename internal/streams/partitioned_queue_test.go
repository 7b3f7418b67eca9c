package streams

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartitionedQueue_Defaults(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](0, 0)
	assert.Equal(t, defaultNumPartitions, queue.PartitionCount())
	assert.Equal(t, defaultBuffer, cap(queue.partitions[0]))

	queue = NewPartitionedQueue[int](3, 5)
	assert.Equal(t, 3, queue.PartitionCount())
	assert.Equal(t, 5, cap(queue.partitions[0]))
}

func TestPartitionIndex_StableAndInRange(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"1", "2", "42", "1000000"} {
		idx := partitionIndex(key, 8)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
		assert.Equal(t, idx, partitionIndex(key, 8), "same key must map to the same partition")
	}
}

func TestPartitionedQueue_Publish_SameKeyKeepsOrder(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](4, 10)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, queue.Publish(ctx, "item-7", i))
	}

	ch := queue.partitions[partitionIndex("item-7", 4)]
	require.Len(t, ch, 5)
	for want := 1; want <= 5; want++ {
		assert.Equal(t, want, <-ch)
	}
}

func TestPartitionedQueue_Publish_FullPartitionDropsWithoutBlocking(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](1, 1)
	require.NoError(t, queue.Publish(context.Background(), "k", 1))

	done := make(chan error, 1)
	go func() {
		done <- queue.Publish(context.Background(), "k", 2)
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrPartitionFull)
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full partition")
	}

	ch := queue.partitions[0]
	require.Len(t, ch, 1)
	assert.Equal(t, 1, <-ch)
}

func TestPartitionedQueue_Publish_CancelledContext(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](1, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := queue.Publish(ctx, "k", 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, queue.partitions[0], 0)
}
