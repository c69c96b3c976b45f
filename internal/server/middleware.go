package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// requestLogging logs every request and records it in m. Routes are
// labelled by their chi pattern so path parameters don't explode metric
// cardinality.
func requestLogging(log *zap.Logger, m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
			m.latency.WithLabelValues(route).Observe(duration.Seconds())

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status_code", wrapped.statusCode),
				zap.Int("response_bytes", wrapped.size),
				zap.Duration("duration", duration),
			}
			switch {
			case wrapped.statusCode >= 500:
				log.Error("HTTP request completed with error", fields...)
			case wrapped.statusCode >= 400:
				log.Warn("HTTP request completed with warning", fields...)
			default:
				log.Info("HTTP request completed", fields...)
			}
		})
	}
}

// loggingResponseWriter captures the status code and response size.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
	written    bool
}

func (lrw *loggingResponseWriter) WriteHeader(statusCode int) {
	if !lrw.written {
		lrw.statusCode = statusCode
		lrw.written = true
		lrw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.written = true
	lrw.size += len(b)
	return lrw.ResponseWriter.Write(b)
}
