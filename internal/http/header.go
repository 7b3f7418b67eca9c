package http

import (
	"net/http"
	"strings"

	"github.com/mileusna/useragent"
)

const (
	headerTraceID     = "X-Trace-ID"
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"

	contentTypeJSON = "application/json"
)

// traceID returns X-Trace-ID exactly as the client sent it.
func traceID(r *http.Request) string {
	return r.Header.Get(headerTraceID)
}

// userAgent returns the client family (e.g. "Chrome", "curl") or the raw header when it
// cannot be classified.
func userAgent(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get(headerUserAgent))
	if raw == "" {
		return ""
	}
	if ua := useragent.Parse(raw); ua.Name != "" {
		return ua.Name
	}
	return raw
}
