package http

import (
	"devops-api/internal/shared/svcerrors"
)

// Router errors
const (
	codeRouteNotFound    = "ROUTE_1004"
	codeMethodNotAllowed = "ROUTE_1005"
)

const (
	MessageNotFound         = "Not found"
	MessageMethodNotAllowed = "Method not allowed"
)

// errRouteNotFound returns an error for unmatched paths and malformed item ids.
func errRouteNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeRouteNotFound, MessageNotFound, cause)
}

func errMethodNotAllowed() *svcerrors.ServiceError {
	return svcerrors.NewMethodNotAllowedError(codeMethodNotAllowed, MessageMethodNotAllowed)
}
