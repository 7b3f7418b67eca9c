package ulid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDAt_EncodesTimestamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 16, 9, 30, 0, 123_000_000, time.UTC)
	id := NewULIDAt(at)
	assert.Len(t, id, 26)

	got, err := Time(id)
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "want %s, got %s", at, got)
}

// Not parallel: the shared entropy source only stays monotonic between calls for the same millisecond.
func TestNewULIDAt_SortsByTime(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	first := NewULIDAt(at)
	second := NewULIDAt(at)
	later := NewULIDAt(at.Add(time.Millisecond))

	assert.Less(t, first, second)
	assert.Less(t, second, later)
}

func TestTime_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
