package http

import (
	"fmt"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"devops-api/internal/shared/loggers"
	"devops-api/internal/shared/svcerrors"
	"devops-api/internal/shared/tracing"

	"github.com/go-chi/chi/v5"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwTraceContext(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestLog)
	router.Use(mwRecoverer)
}

// mwTraceContext takes the trace id from X-Trace-ID or mints one, records the start time
// and attaches a request-scoped logger carrying the trace id.
func mwTraceContext(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := tracing.RequestContext{
				TraceID:   traceID(r),
				StartTime: time.Now(),
			}
			if rc.TraceID == "" {
				rc.TraceID = tracing.NewTraceID()
			}

			ctx := tracing.WithRequestContext(r.Context(), rc)
			ctx = httpLogger.With().
				Str(loggers.FieldTraceID, rc.TraceID).
				Logger().WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// mwAppResponseWriter initializes the appResponseWriter once and passes it through the middleware chain.
func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appWriter := newAppResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(appWriter, r)
	})
}

// mwPrometheus records request counts and durations labeled by route pattern, so
// /api/items/1 and /api/items/2 share the /api/items/{id} series.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		routePattern := pathUnmatched
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := http.StatusOK
		errorCode := ""
		if appWriter, ok := w.(*appResponseWriter); ok {
			status = appWriter.StatusOrOK()
			errorCode = appWriter.ErrorCode()
		}
		statusStr := strconv.Itoa(status)

		metricHTTPRequestsTotal.WithLabelValues(
			r.Method,
			routePattern,
			statusStr,
			errorCode,
		).Inc()

		metricHTTPRequestDuration.WithLabelValues(
			r.Method,
			routePattern,
			statusStr,
			errorCode,
		).Observe(time.Since(start).Seconds())
	})
}

// mwRequestLog writes the "Incoming request" and "Request completed" records.
func mwRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := loggers.Ctx(r.Context())

		start := time.Now()
		if rc, ok := tracing.FromContext(r.Context()); ok {
			start = rc.StartTime
		}

		logger.Info().
			Str(loggers.FieldMethod, r.Method).
			Str(loggers.FieldPath, r.URL.Path).
			Str(loggers.FieldUserAgent, userAgent(r)).
			Msg("Incoming request")

		defer func() {
			status := http.StatusOK
			if appWriter, ok := w.(*appResponseWriter); ok {
				status = appWriter.StatusOrOK()
			}
			logger.Info().
				Str(loggers.FieldMethod, r.Method).
				Str(loggers.FieldPath, r.URL.Path).
				Int(loggers.FieldStatusCode, status).
				Float64(loggers.FieldDuration, roundMillis(time.Since(start))).
				Msg("Request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// roundMillis converts d to seconds rounded to three decimals.
func roundMillis(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}

// mwRecoverer provides panic recovery middleware.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}

				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				var panicErr error
				if err, ok := p.(error); ok {
					panicErr = err
				} else {
					panicErr = fmt.Errorf("%v", p)
				}

				writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicErr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
