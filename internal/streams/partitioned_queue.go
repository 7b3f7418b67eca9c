package streams

import (
	"context"
	"encoding/binary"
	"errors"
	"hash/fnv"
)

// ErrPartitionFull is returned by Publish when the key's partition has no free buffer slot.
var ErrPartitionFull = errors.New("partition full")

// PartitionedQueue is a set of buffered channels. Messages with the same partition key
// always land on the same channel, so a single reader per partition sees them in order.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultNumPartitions = 4
	defaultBuffer        = 256
)

// NewPartitionedQueue creates a queue; non-positive sizes fall back to the defaults.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Publish buffers msg without blocking. It fails with ctx's error when ctx is already done
// and with ErrPartitionFull when the partition is full; the message is dropped in both cases.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	default:
		return ErrPartitionFull
	}
}

func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
