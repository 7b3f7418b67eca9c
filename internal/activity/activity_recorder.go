package activity

import (
	"context"

	"devops-api/internal/events"
	"devops-api/internal/shared/loggers"
	"devops-api/internal/shared/svcerrors"
)

// ActivityRecorder turns item events into item activity metrics.
//
//go:generate mockgen -source=activity_recorder.go -destination=./mocks/activity_recorder_mock.go -package=mocks
type ActivityRecorder interface {
	Record(ctx context.Context, event *events.ItemEvent) *svcerrors.ServiceError
}

type activityRecorder struct{}

func NewActivityRecorder() ActivityRecorder {
	return &activityRecorder{}
}

func (r *activityRecorder) Record(ctx context.Context, event *events.ItemEvent) *svcerrors.ServiceError {
	switch event.Type {
	case events.ItemCreated:
		metricItemsLive.Inc()
	case events.ItemDeleted:
		metricItemsLive.Dec()
	case events.ItemUpdated:
	default:
		return errInternalUnknownEventType(event.Type)
	}
	metricItemEventsTotal.WithLabelValues(string(event.Type)).Inc()

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldEventID, event.EventID).
		Str(loggers.FieldEventType, string(event.Type)).
		Int64(loggers.FieldItemID, event.ItemID).
		Msg("item event recorded")

	return nil
}
