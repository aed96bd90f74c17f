package errors

type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it and returns the status the response must carry.
// Client errors are logged at warn level, everything else at error level.
func (h *ErrorHandler) Handle(err error, fields map[string]interface{}) (*StandardError, int) {
	stdErr := Normalize(err)
	if stdErr == nil {
		stdErr = NewInternalError("nil error passed to error handler")
	}
	status := HTTPStatus(stdErr.Code)

	h.logError(stdErr, status, fields)
	return stdErr, status
}

func (h *ErrorHandler) logError(stdErr *StandardError, status int, fields map[string]interface{}) {
	if h.logger == nil {
		return
	}

	logFields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"status":        status,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		logFields[k] = v
	}
	for k, v := range fields {
		logFields[k] = v
	}

	if IsClientError(stdErr.Code) {
		h.logger.Warn("Request rejected", logFields)
		return
	}
	h.logger.Error("Request failed", logFields)
}
