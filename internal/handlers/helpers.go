package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// errorBody is the single-entity error envelope. Batch operations use the
// aggregated created/updated/errors shape instead; the two conventions are
// deliberately not unified.
type errorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteError writes the standard single-entity error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]errorBody{
		"error": {Message: message},
	})
}

// WriteErrorDetails writes an error response with a debug-mode detail field.
func WriteErrorDetails(w http.ResponseWriter, statusCode int, message, details string) error {
	return WriteJSON(w, statusCode, map[string]errorBody{
		"error": {Message: message, Details: details},
	})
}

// ParseIDList splits a comma-separated ID string, trimming whitespace and
// dropping empty entries.
func ParseIDList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// QueryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
