package ui

import (
	"net/http"
)

type Service interface {
	// Write JSON to response
	WriteJSON(w http.ResponseWriter, r *http.Request, data any)
	// Write JSON with a status code other than 200
	WriteJSONStatus(w http.ResponseWriter, r *http.Request, status int, data any)
	// Write JSON error to response
	JSONError(w http.ResponseWriter, r *http.Request, statusCode int)
	// Decode the JSON request body into the target
	DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error
}

// Max accepted request body
const maxBodyBytes = 1 << 20

type service struct{}

func New() Service {
	return &service{}
}
