package misc

import (
	"log"
	"net/http"
)

// Simple liveness check
func (s *Service) HealthcheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Robots-Tag", "noindex")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response on '%s'; %v", r.URL.Path, err)
	}
}

// DB, Redis and server health status.
// Backends that are not configured are reported as disabled.
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {

	disabled := map[string]any{"status": "disabled"}

	data := map[string]any{
		"redis_status":    disabled,
		"database_status": disabled,
		"server_status":   getServerStats(),
	}

	if s.rdb != nil {
		data["redis_status"] = s.rdb.Health(r.Context())
	}

	if s.db != nil {
		data["database_status"] = s.db.Health(r.Context())
	}

	s.ui.WriteJSON(w, r, data)
}
