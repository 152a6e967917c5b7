package handlers

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// The legacy front end reads {success, data, error} at HTTP 200 and shows
// the error string in a toast; validation and storage failures share the
// same shape.
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, map[string]any{"success": true, "data": data})
}

func respondError(w http.ResponseWriter, msg string) {
	respondJSON(w, map[string]any{"success": false, "error": msg})
}
