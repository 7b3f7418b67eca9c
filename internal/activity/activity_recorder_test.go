package activity

import (
	"context"
	"testing"

	"devops-api/internal/events"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecorder_Record_TracksLiveItems(t *testing.T) {
	recorder := NewActivityRecorder()
	ctx := context.Background()

	liveBefore := testutil.ToFloat64(metricItemsLive)
	createdBefore := testutil.ToFloat64(metricItemEventsTotal.WithLabelValues(string(events.ItemCreated)))
	updatedBefore := testutil.ToFloat64(metricItemEventsTotal.WithLabelValues(string(events.ItemUpdated)))
	deletedBefore := testutil.ToFloat64(metricItemEventsTotal.WithLabelValues(string(events.ItemDeleted)))

	require.Nil(t, recorder.Record(ctx, &events.ItemEvent{Type: events.ItemCreated, ItemID: 1}))
	require.Nil(t, recorder.Record(ctx, &events.ItemEvent{Type: events.ItemCreated, ItemID: 2}))
	require.Nil(t, recorder.Record(ctx, &events.ItemEvent{Type: events.ItemUpdated, ItemID: 1}))
	require.Nil(t, recorder.Record(ctx, &events.ItemEvent{Type: events.ItemDeleted, ItemID: 2}))

	assert.Equal(t, liveBefore+1, testutil.ToFloat64(metricItemsLive))
	assert.Equal(t, createdBefore+2, testutil.ToFloat64(metricItemEventsTotal.WithLabelValues(string(events.ItemCreated))))
	assert.Equal(t, updatedBefore+1, testutil.ToFloat64(metricItemEventsTotal.WithLabelValues(string(events.ItemUpdated))))
	assert.Equal(t, deletedBefore+1, testutil.ToFloat64(metricItemEventsTotal.WithLabelValues(string(events.ItemDeleted))))
}

func TestActivityRecorder_Record_UnknownEventType(t *testing.T) {
	recorder := NewActivityRecorder()
	liveBefore := testutil.ToFloat64(metricItemsLive)

	svcErr := recorder.Record(context.Background(), &events.ItemEvent{Type: "item_renamed", ItemID: 1})

	require.NotNil(t, svcErr)
	assert.Equal(t, "ACT_9000", svcErr.Code)
	assert.True(t, svcErr.IsInternalError())
	assert.Equal(t, liveBefore, testutil.ToFloat64(metricItemsLive))
}
