package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/vlatan/video-playlist/internal/models"
	"github.com/vlatan/video-playlist/internal/utils"
)

// Write JSON to buffer first and then if succesfull to the response writer
func (s *service) WriteJSON(w http.ResponseWriter, r *http.Request, data any) {
	s.WriteJSONStatus(w, r, http.StatusOK, data)
}

// WriteJSONStatus writes JSON with the given status code
func (s *service) WriteJSONStatus(w http.ResponseWriter, r *http.Request, status int, data any) {

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON response on URI '%s': %v", r.RequestURI, err)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write JSON to response on URI '%s': %v", r.RequestURI, err)
	}
}

// Write JSON error to response
func (s *service) JSONError(w http.ResponseWriter, r *http.Request, statusCode int) {

	data := models.JSONErrorData{
		Error: http.StatusText(statusCode),
		Code:  statusCode,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON 'error' response on URI '%s': %v", r.RequestURI, err)
		utils.HttpError(w, statusCode)
		return
	}

	// Content type needs to be set before writing the status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		log.Printf("Failed to write JSON 'error' to response on URI '%s': %v", r.RequestURI, err)
	}
}

// DecodeJSON decodes a single JSON object from the request body.
// Unknown fields and trailing data are rejected.
func (s *service) DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid JSON body; %w", err)
	}

	if decoder.More() {
		return errors.New("invalid JSON body; trailing data")
	}

	return nil
}
