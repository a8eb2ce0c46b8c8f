package middlewares

import (
	"bytes"
	"log"
	"net/http"
)

// responseRecorder buffers the status and the body of the next handler
// so an error response can be replaced before anything reaches the client.
type responseRecorder struct {
	http.ResponseWriter
	body   *bytes.Buffer
	status int
}

// NewResponseRecorder wraps the writer, defaulting the status to 200
func NewResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{
		ResponseWriter: w,
		body:           new(bytes.Buffer),
		status:         http.StatusOK,
	}
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}

// flush sends the captured (or replaced) response to the client
func (r *responseRecorder) flush() {
	r.ResponseWriter.WriteHeader(r.status)
	if r.body.Len() == 0 {
		return
	}

	if _, err := r.ResponseWriter.Write(r.body.Bytes()); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Error writing response body: %v", err)
	}
}
