package http

import (
	"net/http"
	"time"
)

// serviceName is the fixed service identifier reported by /health. APP_NAME only
// changes the "app" field of log records.
const serviceName = "devops-api"

// ServiceInfo describes the running build for app_info.
type ServiceInfo struct {
	Version string
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type healthHandler struct {
	now func() time.Time
}

func NewHealthHandler() AppHttpHandler {
	return &healthHandler{
		now: time.Now,
	}
}

// Handle processes GET /health.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Service:   serviceName,
	})
	return nil
}

type notFoundHandler struct{}

func (notFoundHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return errRouteNotFound(nil)
}

type methodNotAllowedHandler struct{}

func (methodNotAllowedHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return errMethodNotAllowed()
}
