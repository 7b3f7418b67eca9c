package events

import (
	"time"
)

// ItemEventType names a mutation of the item store.
type ItemEventType string

const (
	ItemCreated ItemEventType = "item_created"
	ItemUpdated ItemEventType = "item_updated"
	ItemDeleted ItemEventType = "item_deleted"
)

// ItemEvent records one successful mutation of the item store. Events are published after
// the mutation has been applied and are consumed asynchronously by the activity recorder.
//
// Example JSON:
//
//	{
//	  "eventId": "01JA7X9Q3M2W8C5T0V6N4R1B7K",
//	  "type": "item_created",
//	  "itemId": 3,
//	  "traceId": "0f8e3c9a-5b1d-4e27-9a61-2c4d7b8e9f10",
//	  "occurredAt": "2026-10-16T09:30:00.123456Z"
//	}
type ItemEvent struct {
	EventID    string        `json:"eventId"`
	Type       ItemEventType `json:"type"`
	ItemID     int64         `json:"itemId"`
	TraceID    string        `json:"traceId"`
	OccurredAt time.Time     `json:"occurredAt"`
}
