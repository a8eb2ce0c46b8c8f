package middlewares

import (
	"net/http"
)

// Paths polled by the orchestrator
const probePath = "/healthcheck"

// Check if this is a liveness probe
func isProbe(r *http.Request) bool {
	return r.URL.Path == probePath
}

// Captures the status code written by the next handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(statusCode int) {
	sw.status = statusCode
	sw.ResponseWriter.WriteHeader(statusCode)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
