package api

import (
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/common/metrics"
	"bfhl-service/internal/operations"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.success(w, nil)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		s.failure(w, http.StatusServiceUnavailable)
		return
	}
	s.success(w, nil)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, "", errors.NewRouteNotFoundError(r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, "", errors.NewMethodNotAllowedError(r.Method, r.URL.Path))
}

// handleBFHL reads a single-key JSON object and runs the matching operation.
func (s *Server) handleBFHL(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := s.readBody(w, r)
	if err != nil {
		s.observe(r, "", s.fail(w, r, "", err), start)
		return
	}

	key, raw, err := operations.ParseEnvelope(body)
	if err != nil {
		s.observe(r, "", s.fail(w, r, "", err), start)
		return
	}

	// unknown keys stay out of metric labels
	label := ""
	if _, ok := s.registry.Lookup(key); ok {
		label = key
	}

	data, err := s.registry.Execute(r.Context(), key, raw)
	if err != nil {
		s.observe(r, label, s.fail(w, r, key, err), start)
		return
	}

	s.success(w, data)
	s.observe(r, label, http.StatusOK, start)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !(mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")) {
		return nil, errors.NewInvalidRequestBodyError(stderrors.New("content type must be application/json"))
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.NewPayloadTooLargeError(tooLarge.Limit)
		}
		return nil, errors.NewInvalidRequestBodyError(err)
	}
	return body, nil
}

// fail logs err and writes the failure envelope. It returns the status sent.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, operation string, err error) int {
	fields := map[string]interface{}{
		"requestId": RequestIDFromContext(r.Context()),
		"method":    r.Method,
		"path":      r.URL.Path,
	}
	if operation != "" {
		fields["operation"] = operation
	}
	stdErr, status := s.errHandler.Handle(err, fields)
	if errors.GetErrorCategory(stdErr.Code) == "UPSTREAM" {
		metrics.GenAIFailures.WithLabelValues(string(stdErr.Code)).Inc()
	}
	s.failure(w, status)
	return status
}

func (s *Server) observe(r *http.Request, operation string, status int, start time.Time) {
	elapsed := time.Since(start)
	metrics.ObserveRequest(operation, status, elapsed)
	if operation == "" {
		return
	}
	s.obs.RecordOperation(r.Context(), operation, metrics.StatusClass(status))
	s.obs.RecordDuration(r.Context(), operation, elapsed)
}
