package http

import (
	"net/http"

	"devops-api/internal/items"
	"devops-api/internal/shared/loggers"
	"devops-api/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(itemService items.ItemService, info ServiceInfo, httpLogger loggers.Logger) http.Handler {
	metrics.SetAppInfo(info.Version)

	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.NotFound(errorHandlingAdapter(notFoundHandler{}))
	router.MethodNotAllowed(errorHandlingAdapter(methodNotAllowedHandler{}))

	router.Get("/health", errorHandlingAdapter(NewHealthHandler()))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	router.Get("/api/items", errorHandlingAdapter(NewListItemsHandler(itemService)))
	router.Post("/api/items", errorHandlingAdapter(NewCreateItemHandler(itemService)))
	router.Get("/api/items/{id}", errorHandlingAdapter(NewGetItemHandler(itemService)))
	router.Put("/api/items/{id}", errorHandlingAdapter(NewUpdateItemHandler(itemService)))
	router.Delete("/api/items/{id}", errorHandlingAdapter(NewDeleteItemHandler(itemService)))

	return router
}
