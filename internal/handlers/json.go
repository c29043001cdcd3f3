package handlers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the uniform body for confirmations and errors.
// swagger:model MessageResponse
type MessageResponse struct {
	// Human readable message
	// default: Something went wrong. Please try again.
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}
