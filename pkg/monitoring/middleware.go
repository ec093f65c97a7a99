package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MonitoringMiddleware combines metrics, tracing, and logging
type MonitoringMiddleware struct {
	metrics *MetricsCollector
	tracing *TracingManager
	logger  Logger
}

// Logger interface for the monitoring middleware
type Logger interface {
	HTTPRequest(ctx context.Context, method, path, userAgent, clientIP string, statusCode int, duration int64, details map[string]interface{})
}

// NewMonitoringMiddleware creates a new monitoring middleware.
// The tracing manager may be nil when tracing is disabled.
func NewMonitoringMiddleware(metrics *MetricsCollector, tracing *TracingManager, logger Logger) *MonitoringMiddleware {
	return &MonitoringMiddleware{
		metrics: metrics,
		tracing: tracing,
		logger:  logger,
	}
}

// HTTPMiddleware creates comprehensive HTTP monitoring middleware
func (mm *MonitoringMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Generate request ID if not present
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// Add request ID to context
		ctx := context.WithValue(r.Context(), "request_id", requestID)

		// Create response writer wrapper
		wrapper := &monitoringResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Add request ID to response headers
		wrapper.Header().Set("X-Request-ID", requestID)

		handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
		}))
		if mm.tracing != nil {
			handler = mm.tracing.HTTPMiddleware(handler)
		}
		handler.ServeHTTP(wrapper, r.WithContext(ctx))

		duration := time.Since(start)

		// Record metrics
		mm.metrics.RecordHTTPRequest(r.Method, r.URL.Path, wrapper.statusCode, duration)

		// Log the request
		mm.logger.HTTPRequest(ctx, r.Method, r.URL.Path, r.UserAgent(), r.RemoteAddr,
			wrapper.statusCode, duration.Milliseconds(), nil)
	})
}

// monitoringResponseWriter wraps http.ResponseWriter to capture status code
type monitoringResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (mrw *monitoringResponseWriter) WriteHeader(code int) {
	mrw.statusCode = code
	mrw.ResponseWriter.WriteHeader(code)
}
