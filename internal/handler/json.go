package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON encodes data as the response body with the given status.
// Encoding failures can only be logged at this point because the
// status line has already been written.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response body", "error", err)
	}
}

// writeError sends the standard {"error": message} body with the given
// status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes the request body into dst.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
