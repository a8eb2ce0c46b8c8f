package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/vlatan/video-playlist/internal/config"
	"github.com/vlatan/video-playlist/internal/ui"
)

type Service struct {
	ui     ui.Service
	config *config.Config
}

func New(ui ui.Service, config *config.Config) *Service {
	return &Service{
		ui:     ui,
		config: config,
	}
}

// Close the body if POST or PUT request
func (s *Service) CloseBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Close request body to prevent resource leaks
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			defer r.Body.Close()
		}
		next.ServeHTTP(w, r)
	})
}

// Do not crash the app on panic, serve 500 error to the client
func (s *Service) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If in production recover panic
		if !s.config.Debug {
			defer func() {
				if err := recover(); err != nil {
					log.Printf("Panic in %s %s: %#v", r.Method, r.URL.Path, err)
					s.ui.JSONError(w, r, http.StatusInternalServerError)
				}
			}()
		}

		next.ServeHTTP(w, r)
	})
}

// Log the method, path, status and duration of every request
func (s *Service) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Probes hit the server every few seconds
		if isProbe(r) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		log.Printf("%s %s %d %s", r.Method, r.URL.RequestURI(), sw.status, time.Since(start))
	})
}

// Add security headers to request
func (s *Service) AddHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")

		// The playlist state changes on every action
		w.Header().Set("Cache-Control", "no-store")

		// HSTS (HTTPS only)
		if !s.config.Debug {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		next.ServeHTTP(w, r)
	})
}

// Record the status code and body and serve JSON errors if the response is error
func (s *Service) HandleErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Create our custom response recorder
		recorder := NewResponseRecorder(w)

		// Defer the final response write until the function exits.
		// This ensures that either the original response or the error response is written.
		defer recorder.flush()

		// Call the next handler in the chain
		next.ServeHTTP(recorder, r)

		// We don't care if this is not an error
		if recorder.status < 400 {
			return
		}

		// Clear any previously buffered body and serve JSON error
		recorder.body.Reset()
		s.ui.JSONError(recorder, r, recorder.status)
	})
}

// Compress provides gzip compression to the API responses
func (s *Service) Compress(next http.Handler) http.Handler {

	// Create the gzip handler
	gzipHandler := gzhttp.GzipHandler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Nothing worth compressing in a probe response
		if isProbe(r) {
			next.ServeHTTP(w, r)
			return
		}

		gzipHandler.ServeHTTP(w, r)
	})
}

// Chain middlewares that apply to all handlers
func (s *Service) ApplyToAll(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		// Apply middlewares in reverse order
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
