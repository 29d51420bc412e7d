// Package utils holds helpers shared by the api packages.
package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes payload as the JSON response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondMessage writes the {"message": ...} body used for every plain
// outcome on the wire.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}
