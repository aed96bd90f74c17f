package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/common/metrics"
)

type requestIDContextKey struct{}

const requestIDHeader = "X-Request-Id"

// withRequestID propagates an incoming request id or generates one, and sets
// it on the response and the request context.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the id set by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	if r.status == 0 {
		r.status = statusCode
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// withRequestLog emits one access log line per request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		metrics.RequestsActive.Inc()
		defer metrics.RequestsActive.Dec()

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("HTTP request", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  RequestIDFromContext(r.Context()),
			"remoteAddr": r.RemoteAddr,
		})
	})
}

// withRecovery turns a panic into a 500 failure envelope.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			stdErr := errors.NewInternalError(fmt.Sprintf("panic: %v", rec))
			s.errHandler.Handle(stdErr, map[string]interface{}{
				"requestId": RequestIDFromContext(r.Context()),
				"path":      r.URL.Path,
				"stack":     string(debug.Stack()),
			})
			s.failure(w, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
