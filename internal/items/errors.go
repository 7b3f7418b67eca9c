package items

import (
	"fmt"

	"devops-api/internal/shared/svcerrors"
)

// ItemService errors
const (
	codeNameRequired  = "ITEM_1000"
	codeInvalidBody   = "ITEM_1001"
	codeBodyTooLarge  = "ITEM_1002"
	codeItemNotFound  = "ITEM_1004"
	codeInternalStore = "ITEM_9000"
)

const (
	MessageNameRequired = "Name is required"
	MessageInvalidBody  = "Invalid JSON body"
	MessageBodyTooLarge = "Request body too large"
	MessageItemNotFound = "Item not found"
)

// errNameRequired returns an error when a create payload is not JSON or has no usable name.
func errNameRequired(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeNameRequired, MessageNameRequired, cause)
}

// errInvalidBody returns an error when an update payload is not a JSON object.
func errInvalidBody(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidBody, MessageInvalidBody, cause)
}

// errBodyTooLarge returns an error when a payload exceeds maxItemBodyBytes.
func errBodyTooLarge() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBodyTooLarge, MessageBodyTooLarge, nil)
}

// errItemNotFound returns an error when no item has the requested id.
func errItemNotFound(id int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeItemNotFound, MessageItemNotFound, fmt.Errorf("item %d: %w", id, cause))
}

// errInternalStoreFailed returns an error when the item store fails unexpectedly.
func errInternalStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStore, fmt.Errorf("itemStoreFailed: %w", cause))
}
