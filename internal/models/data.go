package models

// JSONErrorData is the body of every JSON error response
type JSONErrorData struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
