package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"detail": message}. A non-nil err is appended to the message.
func WriteError(w http.ResponseWriter, status int, message string, err error) {
	detail := message
	if err != nil {
		detail = message + ": " + err.Error()
	}
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}
