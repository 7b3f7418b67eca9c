package activity

import (
	"fmt"

	"devops-api/internal/events"
	"devops-api/internal/shared/svcerrors"
)

const (
	codeInternalUnknownEventType = "ACT_9000"
)

// errInternalUnknownEventType returns an error when an event carries a type the recorder does not know.
func errInternalUnknownEventType(eventType events.ItemEventType) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUnknownEventType, fmt.Errorf("unknownEventType: %q", eventType))
}
