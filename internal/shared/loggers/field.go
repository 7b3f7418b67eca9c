package loggers

const (
	FieldTimestamp = "timestamp"
	FieldMessage   = "message"

	FieldApp       = "app"
	FieldComponent = "component"

	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_seconds"
	FieldTraceID    = "trace_id"
	FieldUserAgent  = "user_agent"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldItemID      = "item_id"
	FieldEventID     = "event_id"
	FieldEventType   = "event_type"
	FieldPartitionID = "partition_id"
)
